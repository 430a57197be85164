package card

import "time"

// Card is a task row that carries a due date.
type Card struct {
	Name    string
	DueDate time.Time
}
