package request

type BookSlotRequest struct {
	SlotID string `json:"slot_id" validate:"required,uuid4"`
	IsDemo bool   `json:"is_demo"`
	Notes  string `json:"notes" validate:"max=500"`
}
