package ledger

import "github.com/pennywiseapp/pennywise/internal/models"

// Participant status moves strictly forward: Unpaid -> Paid -> Settled.
// There is no unmark operation; Settled is terminal.

// MarkPaid returns a copy of the record with the participant's HasPaid
// flag set. Marking an already-paid participant is a no-op, so retries
// are safe. Settled is never touched here.
func MarkPaid(record models.SplitRecord, participantID string) (models.SplitRecord, error) {
	return mutateParticipant(record, participantID, func(p *models.SplitParticipant) error {
		p.HasPaid = true
		return nil
	})
}

// MarkSettled returns a copy of the record with the participant's
// Settled flag set. The participant must already be paid; settlement is
// the creator confirming receipt of a payment that happened.
//
// Authorization (only the creator settles) is the caller's contract,
// not enforced here.
func MarkSettled(record models.SplitRecord, participantID string) (models.SplitRecord, error) {
	return mutateParticipant(record, participantID, func(p *models.SplitParticipant) error {
		if !p.HasPaid {
			return ErrNotYetPaid
		}
		p.Settled = true
		return nil
	})
}

// mutateParticipant copies the record, applies fn to the matching
// participant, and bumps the version. The input record is never modified.
func mutateParticipant(record models.SplitRecord, participantID string, fn func(*models.SplitParticipant) error) (models.SplitRecord, error) {
	idx := -1
	for i, p := range record.Participants {
		if p.UserID == participantID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.SplitRecord{}, ErrParticipantNotFound
	}

	out := record
	out.Participants = make([]models.SplitParticipant, len(record.Participants))
	copy(out.Participants, record.Participants)

	if err := fn(&out.Participants[idx]); err != nil {
		return models.SplitRecord{}, err
	}
	out.Version = record.Version + 1
	return out, nil
}
