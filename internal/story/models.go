package story

// Story is a published bedtime story. Timestamps are epoch milliseconds set
// by the server; ID is the store key and is not part of the stored fields.
type Story struct {
	ID            string `json:"id" bson:"-"`
	Title         string `json:"title" bson:"title"`
	Content       string `json:"content" bson:"content"`
	CoverImageURL string `json:"coverImageUrl" bson:"coverImageUrl"`
	CreatedAt     int64  `json:"createdAt" bson:"createdAt"`
	UpdatedAt     int64  `json:"updatedAt" bson:"updatedAt"`
}

// Input is the client-supplied part of a story, used by both create and
// update (full replace).
type Input struct {
	Title         string `json:"title" bson:"title" validate:"required"`
	Content       string `json:"content" bson:"content" validate:"required"`
	CoverImageURL string `json:"coverImageUrl" bson:"coverImageUrl" validate:"required"`
}
