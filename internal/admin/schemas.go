package admin

import (
	"context"
	"strconv"
	"strings"

	"placement_dashboard/internal/crud"
	"placement_dashboard/internal/model"
	"placement_dashboard/internal/service"
)

// optionPageSize 是 search_select 每次查詢的筆數
const optionPageSize = 10

// optionsFrom 以列表端點的搜尋作為 search_select 的選項來源
func optionsFrom[T model.Entity](svc *service.REST[T], label func(T) string) crud.OptionsFunc {
	return func(ctx context.Context, query string) ([]crud.Option, error) {
		resp, err := svc.List(ctx, service.ListParams{
			Page:     1,
			PageSize: optionPageSize,
			Search:   strings.TrimSpace(query),
		})
		if err != nil {
			return nil, err
		}
		options := make([]crud.Option, 0, len(resp.Data))
		for _, item := range resp.Data {
			options = append(options, crud.Option{
				Label: label(item),
				Value: strconv.FormatInt(item.Identifier(), 10),
			})
		}
		return options, nil
	}
}

// labelsFrom 讀取整個參照集合作為名稱對照
func labelsFrom[T model.Entity](svc *service.REST[T], label func(T) string) LabelsFunc {
	return func(ctx context.Context) (map[string]string, error) {
		items, err := svc.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		out := make(map[string]string, len(items))
		for _, item := range items {
			out[strconv.FormatInt(item.Identifier(), 10)] = label(item)
		}
		return out, nil
	}
}

func nameField(label string) crud.Field {
	return crud.Field{Name: "name", Label: label, Type: crud.FieldText, Required: true, Max: crud.Bound(80), Placeholder: "Enter " + strings.ToLower(label)}
}

// nameOnly 是只有名稱的目錄型實體
func nameOnly(title, entity string) Schema {
	return Schema{
		Title:    title,
		Subtitle: "Manage " + strings.ToLower(title),
		Entity:   entity,
		Columns:  []crud.Column{{Key: "id", Label: "ID"}, {Key: "name", Label: "Name"}},
		Fields:   []crud.Field{nameField(entity + " name")},
	}
}

// Schemas 回傳所有實體的頁面描述
func Schemas(c *service.Catalog) map[model.Kind]Schema {
	cityOptions := optionsFrom(c.Cities, func(x model.City) string { return x.Name })
	categoryOptions := optionsFrom(c.VideoCategories, func(x model.VideoCategory) string { return x.Name })
	subcategoryOptions := optionsFrom(c.VideoSubcategories, func(x model.VideoSubcategory) string { return x.Name })
	planTypeOptions := optionsFrom(c.PlanTypes, func(x model.PlanType) string { return x.Name })
	universityOptions := optionsFrom(c.Universities, func(x model.University) string { return x.Name })

	// search_select 欄位名稱對應的參照集合
	labels := map[string]LabelsFunc{
		"city":        labelsFrom(c.Cities, func(x model.City) string { return x.Name }),
		"category":    labelsFrom(c.VideoCategories, func(x model.VideoCategory) string { return x.Name }),
		"subcategory": labelsFrom(c.VideoSubcategories, func(x model.VideoSubcategory) string { return x.Name }),
		"plan_type":   labelsFrom(c.PlanTypes, func(x model.PlanType) string { return x.Name }),
		"university":  labelsFrom(c.Universities, func(x model.University) string { return x.Name }),
	}

	schemas := map[model.Kind]Schema{
		model.KindCompanies: {
			Title:    "Companies",
			Subtitle: "Companies hiring on the platform",
			Entity:   "Company",
			Columns: []crud.Column{
				{Key: "logo", Label: "Logo", CSS: "w-16"},
				{Key: "name", Label: "Name"},
				{Key: "email", Label: "Email"},
				{Key: "city", Label: "City"},
				{Key: "is_verified", Label: "Verified"},
			},
			Fields: []crud.Field{
				{Name: "name", Label: "Company name", Type: crud.FieldText, Required: true, Max: crud.Bound(120)},
				{Name: "email", Label: "Email", Type: crud.FieldText, Required: true},
				{Name: "phone", Label: "Phone", Type: crud.FieldText},
				{Name: "website", Label: "Website", Type: crud.FieldText, Placeholder: "https://"},
				{Name: "description", Label: "Description", Type: crud.FieldTextarea},
				{Name: "city", Label: "City", Type: crud.FieldSearchSelect, FetchOptions: cityOptions},
				{Name: "logo", Label: "Logo", Type: crud.FieldFile},
				{Name: "is_verified", Label: "Verified", Type: crud.FieldCheckbox},
			},
			Images: []string{"logo"},
		},
		model.KindCities: {
			Title:    "Cities",
			Subtitle: "Cities used in profiles and listings",
			Entity:   "City",
			Columns: []crud.Column{
				{Key: "id", Label: "ID"},
				{Key: "name", Label: "Name"},
				{Key: "state", Label: "State"},
				{Key: "country", Label: "Country"},
			},
			Fields: []crud.Field{
				nameField("City name"),
				{Name: "state", Label: "State", Type: crud.FieldText},
				{Name: "country", Label: "Country", Type: crud.FieldText},
			},
		},
		model.KindSkills:       nameOnly("Skills", "Skill"),
		model.KindDesignations: nameOnly("Designations", "Designation"),
		model.KindJobTypes:     nameOnly("Job Types", "Job Type"),
		model.KindCategories: {
			Title:    "Categories",
			Subtitle: "Internship and job categories",
			Entity:   "Category",
			Columns: []crud.Column{
				{Key: "id", Label: "ID"},
				{Key: "name", Label: "Name"},
				{Key: "description", Label: "Description"},
			},
			Fields: []crud.Field{
				nameField("Category name"),
				{Name: "description", Label: "Description", Type: crud.FieldTextarea, Max: crud.Bound(500)},
			},
		},
		model.KindPerks: {
			Title:    "Perks",
			Subtitle: "Perks offered with listings",
			Entity:   "Perk",
			Columns: []crud.Column{
				{Key: "icon", Label: "Icon", CSS: "w-12"},
				{Key: "name", Label: "Name"},
			},
			Fields: []crud.Field{
				nameField("Perk name"),
				{Name: "icon", Label: "Icon", Type: crud.FieldFile},
			},
			Images: []string{"icon"},
		},
		model.KindUniversities: {
			Title:    "Universities",
			Subtitle: "Partner universities",
			Entity:   "University",
			Columns: []crud.Column{
				{Key: "logo", Label: "Logo", CSS: "w-16"},
				{Key: "name", Label: "Name"},
				{Key: "email", Label: "Email"},
				{Key: "city", Label: "City"},
			},
			Fields: []crud.Field{
				{Name: "name", Label: "University name", Type: crud.FieldText, Required: true, Max: crud.Bound(120)},
				{Name: "email", Label: "Email", Type: crud.FieldText, Required: true},
				{Name: "website", Label: "Website", Type: crud.FieldText},
				{Name: "city", Label: "City", Type: crud.FieldSearchSelect, FetchOptions: cityOptions},
				{Name: "logo", Label: "Logo", Type: crud.FieldFile},
			},
			Images: []string{"logo"},
		},
		model.KindVideoCourses: {
			Title:    "Video Courses",
			Subtitle: "Recorded courses available to students",
			Entity:   "Video Course",
			Columns: []crud.Column{
				{Key: "thumbnail", Label: "Thumbnail", CSS: "w-20"},
				{Key: "title", Label: "Title"},
				{Key: "category", Label: "Category"},
				{Key: "price", Label: "Price"},
				{Key: "is_published", Label: "Published"},
			},
			Fields: []crud.Field{
				{Name: "title", Label: "Title", Type: crud.FieldText, Required: true, Min: crud.Bound(3), Max: crud.Bound(160)},
				{Name: "description", Label: "Description", Type: crud.FieldTextarea},
				{Name: "category", Label: "Category", Type: crud.FieldSearchSelect, FetchOptions: categoryOptions},
				{Name: "subcategory", Label: "Subcategory", Type: crud.FieldSearchSelect, FetchOptions: subcategoryOptions},
				{Name: "video_url", Label: "Video URL", Type: crud.FieldText},
				{Name: "price", Label: "Price", Type: crud.FieldNumber, Min: crud.Bound(0)},
				{Name: "thumbnail", Label: "Thumbnail", Type: crud.FieldFile},
				{Name: "is_published", Label: "Published", Type: crud.FieldCheckbox},
			},
			Images: []string{"thumbnail"},
			Money:  []string{"price"},
		},
		model.KindVideoCategories: nameOnly("Video Categories", "Video Category"),
		model.KindVideoSubcategories: {
			Title:    "Video Subcategories",
			Subtitle: "Subcategories within a video category",
			Entity:   "Video Subcategory",
			Columns: []crud.Column{
				{Key: "id", Label: "ID"},
				{Key: "name", Label: "Name"},
				{Key: "category", Label: "Category"},
			},
			Fields: []crud.Field{
				nameField("Subcategory name"),
				{Name: "category", Label: "Category", Type: crud.FieldSearchSelect, Required: true, FetchOptions: categoryOptions},
			},
		},
		model.KindPlanTypes: {
			Title:    "Plan Types",
			Subtitle: "Subscription plan types",
			Entity:   "Plan Type",
			Columns: []crud.Column{
				{Key: "name", Label: "Name"},
				{Key: "description", Label: "Description"},
				{Key: "is_active", Label: "Active"},
			},
			Fields: []crud.Field{
				nameField("Plan type name"),
				{Name: "description", Label: "Description", Type: crud.FieldTextarea},
				{Name: "is_active", Label: "Active", Type: crud.FieldCheckbox},
			},
		},
		model.KindSubscribePlans: {
			Title:    "Subscribe Plans",
			Subtitle: "Plans students and companies can subscribe to",
			Entity:   "Subscribe Plan",
			Columns: []crud.Column{
				{Key: "name", Label: "Name"},
				{Key: "plan_type", Label: "Plan Type"},
				{Key: "price", Label: "Price"},
				{Key: "duration_days", Label: "Days"},
				{Key: "is_active", Label: "Active"},
			},
			Fields: []crud.Field{
				nameField("Plan name"),
				{Name: "plan_type", Label: "Plan type", Type: crud.FieldSearchSelect, Required: true, FetchOptions: planTypeOptions},
				{Name: "price", Label: "Price", Type: crud.FieldNumber, Required: true, Min: crud.Bound(0)},
				{Name: "duration_days", Label: "Duration (days)", Type: crud.FieldNumber, Required: true, Min: crud.Bound(1)},
				{Name: "features", Label: "Features", Type: crud.FieldTextarea},
				{Name: "is_active", Label: "Active", Type: crud.FieldCheckbox},
			},
			Money: []string{"price"},
		},
		model.KindUniversityStudents: {
			Title:    "Students",
			Subtitle: "Students enrolled through the university",
			Entity:   "Student",
			Columns: []crud.Column{
				{Key: "enrollment_no", Label: "Enrollment No."},
				{Key: "first_name", Label: "First Name"},
				{Key: "last_name", Label: "Last Name"},
				{Key: "email", Label: "Email"},
				{Key: "course", Label: "Course"},
			},
			Fields: []crud.Field{
				{Name: "first_name", Label: "First name", Type: crud.FieldText, Required: true, Max: crud.Bound(60)},
				{Name: "last_name", Label: "Last name", Type: crud.FieldText, Required: true, Max: crud.Bound(60)},
				{Name: "email", Label: "Email", Type: crud.FieldText, Required: true},
				{Name: "phone", Label: "Phone", Type: crud.FieldText},
				{Name: "enrollment_no", Label: "Enrollment No.", Type: crud.FieldText, Required: true},
				{Name: "course", Label: "Course", Type: crud.FieldText},
				{Name: "university", Label: "University", Type: crud.FieldSearchSelect, FetchOptions: universityOptions},
			},
		},
	}

	for kind, schema := range schemas {
		for _, f := range schema.Fields {
			if fn, ok := labels[f.Name]; ok && f.Type == crud.FieldSearchSelect {
				if schema.Labels == nil {
					schema.Labels = map[string]LabelsFunc{}
				}
				schema.Labels[f.Name] = fn
			}
		}
		schemas[kind] = schema
	}
	return schemas
}
