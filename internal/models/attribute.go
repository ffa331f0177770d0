package models

// AttributeRequest is the body for creating a tag or an ingredient
type AttributeRequest struct {
	Name string `json:"name" binding:"required,notblank,max=255"`
}

// AttributeResponse is the wire form of a tag or an ingredient
type AttributeResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
