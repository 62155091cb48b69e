package music

// Music is a background track. Records are written by the import tool, the
// API only lists and deletes them.
type Music struct {
	ID         string `json:"id" bson:"-"`
	Name       string `json:"name" bson:"name" validate:"required"`
	URL        string `json:"url" bson:"url" validate:"required,url"`
	UploadedAt int64  `json:"uploadedAt" bson:"uploadedAt"`
}
