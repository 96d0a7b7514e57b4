package model

// VideoCategory 影片課程分類
type VideoCategory struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"required,max=80"`
}

func (c VideoCategory) Identifier() int64    { return c.ID }
func (c VideoCategory) SearchText() []string { return []string{c.Name} }

// VideoSubcategory 影片課程子分類
type VideoSubcategory struct {
	ID         int64  `json:"id"`
	Name       string `json:"name" validate:"required,max=80"`
	CategoryID int64  `json:"category" validate:"required"`
}

func (s VideoSubcategory) Identifier() int64    { return s.ID }
func (s VideoSubcategory) SearchText() []string { return []string{s.Name} }

// VideoCourse 影片課程
type VideoCourse struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title" validate:"required,max=160"`
	Description   string  `json:"description"`
	CategoryID    int64   `json:"category"`
	SubcategoryID int64   `json:"subcategory"`
	Thumbnail     string  `json:"thumbnail"`
	VideoURL      string  `json:"video_url" validate:"omitempty,url"`
	Price         float64 `json:"price" validate:"gte=0"`
	IsPublished   bool    `json:"is_published"`
}

func (c VideoCourse) Identifier() int64    { return c.ID }
func (c VideoCourse) SearchText() []string { return []string{c.Title, c.Description} }
