package ignorereq

type CreateIgnoreRequest struct {
	URI         string `json:"uri" binding:"required"`
	Description string `json:"description"`
}

type UpdateIgnoreRequest struct {
	URI         *string `json:"uri"`
	Description *string `json:"description"`
}
