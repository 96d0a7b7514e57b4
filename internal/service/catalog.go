package service

import (
	"placement_dashboard/internal/model"
	"placement_dashboard/pkg/httpClient"
)

// Catalog 集合所有實體的服務
type Catalog struct {
	Companies          *REST[model.Company]
	Cities             *REST[model.City]
	Skills             *REST[model.Skill]
	Designations       *REST[model.Designation]
	JobTypes           *REST[model.JobType]
	Categories         *REST[model.Category]
	Perks              *REST[model.Perk]
	Universities       *REST[model.University]
	VideoCourses       *REST[model.VideoCourse]
	VideoCategories    *REST[model.VideoCategory]
	VideoSubcategories *REST[model.VideoSubcategory]
	PlanTypes          *REST[model.PlanType]
	SubscribePlans     *REST[model.SubscribePlan]
	UniversityStudents *REST[model.UniversityStudent]
}

// NewCatalog 以同一個 HTTP 客戶端建立所有實體服務
func NewCatalog(client httpClient.HTTPClient) *Catalog {
	return &Catalog{
		Companies:          NewREST[model.Company](client, model.KindCompanies),
		Cities:             NewREST[model.City](client, model.KindCities),
		Skills:             NewREST[model.Skill](client, model.KindSkills),
		Designations:       NewREST[model.Designation](client, model.KindDesignations),
		JobTypes:           NewREST[model.JobType](client, model.KindJobTypes),
		Categories:         NewREST[model.Category](client, model.KindCategories),
		Perks:              NewREST[model.Perk](client, model.KindPerks),
		Universities:       NewREST[model.University](client, model.KindUniversities),
		VideoCourses:       NewREST[model.VideoCourse](client, model.KindVideoCourses),
		VideoCategories:    NewREST[model.VideoCategory](client, model.KindVideoCategories),
		VideoSubcategories: NewREST[model.VideoSubcategory](client, model.KindVideoSubcategories),
		PlanTypes:          NewREST[model.PlanType](client, model.KindPlanTypes),
		SubscribePlans:     NewREST[model.SubscribePlan](client, model.KindSubscribePlans),
		UniversityStudents: NewREST[model.UniversityStudent](client, model.KindUniversityStudents),
	}
}
