package admin

import (
	"fmt"

	"placement_dashboard/internal/async"
	"placement_dashboard/internal/model"
	"placement_dashboard/internal/resource"
	"placement_dashboard/internal/service"
	"placement_dashboard/pkg/logger"

	"go.uber.org/zap"
)

// Screens 依實體建立的管理頁面
type Screens map[model.Kind]Screen

// NewScreens 為每個實體建立頁面
func NewScreens(c *service.Catalog, perPage int, toaster async.Notifier, log logger.Logger) (Screens, error) {
	if log == nil {
		log = logger.NewNop()
	}
	schemas := Schemas(c)
	screens := Screens{}

	add := func(kind model.Kind, build func(Schema, []async.Option) (Screen, error)) error {
		schema, ok := schemas[kind]
		if !ok {
			return fmt.Errorf("no schema for %s", kind)
		}
		opts := []async.Option{async.WithLogger(log.With(zap.String("entity", string(kind))), string(kind))}
		s, err := build(schema, opts)
		if err != nil {
			return err
		}
		screens[kind] = s
		return nil
	}

	builders := map[model.Kind]func(Schema, []async.Option) (Screen, error){
		model.KindCompanies: func(s Schema, o []async.Option) (Screen, error) {
			return NewPage(resource.NewHooks[model.Company](c.Companies, o...), s, perPage, toaster, log)
		},
		model.KindCities: func(s Schema, o []async.Option) (Screen, error) {
			return NewPage(resource.NewHooks[model.City](c.Cities, o...), s, perPage, toaster, log)
		},
		model.KindSkills: func(s Schema, o []async.Option) (Screen, error) {
			return NewPage(resource.NewHooks[model.Skill](c.Skills, o...), s, perPage, toaster, log)
		},
		model.KindDesignations: func(s Schema, o []async.Option) (Screen, error) {
			return NewPage(resource.NewHooks[model.Designation](c.Designations, o...), s, perPage, toaster, log)
		},
		model.KindJobTypes: func(s Schema, o []async.Option) (Screen, error) {
			return NewPage(resource.NewHooks[model.JobType](c.JobTypes, o...), s, perPage, toaster, log)
		},
		model.KindCategories: func(s Schema, o []async.Option) (Screen, error) {
			return NewPage(resource.NewHooks[model.Category](c.Categories, o...), s, perPage, toaster, log)
		},
		model.KindPerks: func(s Schema, o []async.Option) (Screen, error) {
			return NewPage(resource.NewHooks[model.Perk](c.Perks, o...), s, perPage, toaster, log)
		},
		model.KindUniversities: func(s Schema, o []async.Option) (Screen, error) {
			return NewPage(resource.NewHooks[model.University](c.Universities, o...), s, perPage, toaster, log)
		},
		model.KindVideoCourses: func(s Schema, o []async.Option) (Screen, error) {
			return NewPage(resource.NewHooks[model.VideoCourse](c.VideoCourses, o...), s, perPage, toaster, log)
		},
		model.KindVideoCategories: func(s Schema, o []async.Option) (Screen, error) {
			return NewPage(resource.NewHooks[model.VideoCategory](c.VideoCategories, o...), s, perPage, toaster, log)
		},
		model.KindVideoSubcategories: func(s Schema, o []async.Option) (Screen, error) {
			return NewPage(resource.NewHooks[model.VideoSubcategory](c.VideoSubcategories, o...), s, perPage, toaster, log)
		},
		model.KindPlanTypes: func(s Schema, o []async.Option) (Screen, error) {
			return NewPage(resource.NewHooks[model.PlanType](c.PlanTypes, o...), s, perPage, toaster, log)
		},
		model.KindSubscribePlans: func(s Schema, o []async.Option) (Screen, error) {
			return NewPage(resource.NewHooks[model.SubscribePlan](c.SubscribePlans, o...), s, perPage, toaster, log)
		},
		model.KindUniversityStudents: func(s Schema, o []async.Option) (Screen, error) {
			return NewPage(resource.NewHooks[model.UniversityStudent](c.UniversityStudents, o...), s, perPage, toaster, log)
		},
	}

	for _, kind := range model.Kinds {
		build, ok := builders[kind]
		if !ok {
			return nil, fmt.Errorf("no page builder for %s", kind)
		}
		if err := add(kind, build); err != nil {
			return nil, err
		}
	}
	return screens, nil
}

// Close 關閉所有頁面
func (s Screens) Close() {
	for _, screen := range s {
		screen.Close()
	}
}
