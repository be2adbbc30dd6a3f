package booking

import "github.com/BruksfildServices01/barbershop-booking/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// transitions: próximos estados válidos para cada estado atual.
var transitions = map[Status][]Status{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCompleted, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// ===============================
// Validations
// ===============================

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := transitions[st]; !ok {
		return "", httperr.ErrBusiness("invalid_status")
	}
	return st, nil
}

func InitialStatus() Status {
	return StatusPending
}

func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// NextStates devolve uma cópia dos estados alcançáveis a partir de s.
func (s Status) NextStates() []Status {
	next := transitions[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// CanTransition valida a mudança de status pela tabela fixa.
func CanTransition(from, to Status) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_status_transition")
}

// ActiveStatuses são os status que ainda ocupam o horário.
var ActiveStatuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
}
