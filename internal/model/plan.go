package model

// PlanType 訂閱方案類型，集合小，由客戶端分頁
type PlanType struct {
	ID          int64  `json:"id"`
	Name        string `json:"name" validate:"required,max=80"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
}

func (p PlanType) Identifier() int64    { return p.ID }
func (p PlanType) SearchText() []string { return []string{p.Name, p.Description} }

// SubscribePlan 訂閱方案，集合小，由客戶端分頁
type SubscribePlan struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name" validate:"required,max=80"`
	PlanTypeID   int64   `json:"plan_type" validate:"required"`
	Price        float64 `json:"price" validate:"gte=0"`
	DurationDays int     `json:"duration_days" validate:"gte=1"`
	Features     string  `json:"features"`
	IsActive     bool    `json:"is_active"`
}

func (p SubscribePlan) Identifier() int64    { return p.ID }
func (p SubscribePlan) SearchText() []string { return []string{p.Name, p.Features} }
