package model

// CartItem pairs a product snapshot with a positive quantity. Quantity never
// exceeds the snapshot's stock level at the time of the last mutation.
type CartItem struct {
	Product  ProductSnapshot `json:"product"`
	Quantity int             `json:"quantity"`
}
