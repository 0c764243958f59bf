package domain

import "time"

// ChangeOp - тип изменения записи
type ChangeOp string

const (
	ChangeCreated ChangeOp = "created"
	ChangeUpdated ChangeOp = "updated"
	ChangeDeleted ChangeOp = "deleted"
)

// ChangeEvent публикуется в стрим после каждой успешной записи
type ChangeEvent struct {
	Kind string    `json:"kind"`
	Op   ChangeOp  `json:"op"`
	Key  Key       `json:"key"`
	ID   string    `json:"id,omitempty"`
	At   time.Time `json:"at"`
}

// Valid - событие пригодно для обработки
func (e *ChangeEvent) Valid() bool {
	if e.Kind == "" || e.Key.Name == "" {
		return false
	}
	switch e.Op {
	case ChangeCreated, ChangeUpdated, ChangeDeleted:
		return true
	}
	return false
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
