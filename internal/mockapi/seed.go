package mockapi

import (
	"fmt"

	"placement_dashboard/internal/model"
)

// SeedUser 是預設帳號
type SeedUser struct {
	Name     string
	Email    string
	Password string
	Role     model.Role
}

// SeedUsers 是每個角色一個的預設帳號
var SeedUsers = []SeedUser{
	{Name: "Placement Admin", Email: "admin@placement.dev", Password: "Admin@123", Role: model.RoleSuperadmin},
	{Name: "City University", Email: "university@placement.dev", Password: "Univ@123", Role: model.RoleUniversity},
	{Name: "Acme Corp", Email: "company@placement.dev", Password: "Company@123", Role: model.RoleCompany},
	{Name: "Asha Rao", Email: "student@placement.dev", Password: "Student@123", Role: model.RoleStudent},
}

var seedCities = []string{
	"Mumbai", "Delhi", "Bengaluru", "Hyderabad", "Ahmedabad", "Chennai", "Kolkata", "Surat",
	"Pune", "Jaipur", "Lucknow", "Kanpur", "Nagpur", "Indore", "Thane", "Bhopal",
	"Visakhapatnam", "Patna", "Vadodara", "Ghaziabad", "Ludhiana", "Agra", "Nashik",
}

var seedPlanTypes = []string{
	"Basic Monthly", "Basic Quarterly", "Basic Yearly",
	"Standard Monthly", "Standard Quarterly", "Standard Yearly",
	"Premium Monthly", "Premium Quarterly", "Premium Yearly",
	"Campus Starter", "Campus Growth", "Campus Enterprise",
	"Recruiter Trial", "Recruiter Pro", "Recruiter Team",
}

// stores 是每個實體的資料
type stores struct {
	companies          *Store[model.Company]
	cities             *Store[model.City]
	skills             *Store[model.Skill]
	designations       *Store[model.Designation]
	jobTypes           *Store[model.JobType]
	categories         *Store[model.Category]
	perks              *Store[model.Perk]
	universities       *Store[model.University]
	videoCourses       *Store[model.VideoCourse]
	videoCategories    *Store[model.VideoCategory]
	videoSubcategories *Store[model.VideoSubcategory]
	planTypes          *Store[model.PlanType]
	subscribePlans     *Store[model.SubscribePlan]
	universityStudents *Store[model.UniversityStudent]
}

func newStores(seed bool) *stores {
	if !seed {
		return &stores{
			companies:          NewStore[model.Company](),
			cities:             NewStore[model.City](),
			skills:             NewStore[model.Skill](),
			designations:       NewStore[model.Designation](),
			jobTypes:           NewStore[model.JobType](),
			categories:         NewStore[model.Category](),
			perks:              NewStore[model.Perk](),
			universities:       NewStore[model.University](),
			videoCourses:       NewStore[model.VideoCourse](),
			videoCategories:    NewStore[model.VideoCategory](),
			videoSubcategories: NewStore[model.VideoSubcategory](),
			planTypes:          NewStore[model.PlanType](),
			subscribePlans:     NewStore[model.SubscribePlan](),
			universityStudents: NewStore[model.UniversityStudent](),
		}
	}

	cities := make([]model.City, len(seedCities))
	for i, name := range seedCities {
		cities[i] = model.City{ID: int64(i + 1), Name: name, Country: "India"}
	}
	planTypes := make([]model.PlanType, len(seedPlanTypes))
	for i, name := range seedPlanTypes {
		planTypes[i] = model.PlanType{ID: int64(i + 1), Name: name, IsActive: true}
	}
	students := make([]model.UniversityStudent, 12)
	for i := range students {
		students[i] = model.UniversityStudent{
			ID:           int64(i + 1),
			FirstName:    fmt.Sprintf("Student%02d", i+1),
			LastName:     "Kumar",
			Email:        fmt.Sprintf("student%02d@cityuniversity.edu", i+1),
			EnrollmentNo: fmt.Sprintf("CU2026%03d", i+1),
			Course:       "B.Tech",
			UniversityID: 1,
		}
	}

	return &stores{
		companies: NewStore(
			model.Company{ID: 1, Name: "Acme Corp", Email: "hr@acme.example", CityID: 3, IsVerified: true},
			model.Company{ID: 2, Name: "Globex", Email: "jobs@globex.example", CityID: 9},
		),
		cities: NewStore(cities...),
		skills: NewStore(
			model.Skill{ID: 1, Name: "Go"},
			model.Skill{ID: 2, Name: "React"},
			model.Skill{ID: 3, Name: "SQL"},
			model.Skill{ID: 4, Name: "Communication"},
		),
		designations: NewStore(
			model.Designation{ID: 1, Name: "Software Engineer Intern"},
			model.Designation{ID: 2, Name: "Data Analyst"},
		),
		jobTypes: NewStore(
			model.JobType{ID: 1, Name: "Internship"},
			model.JobType{ID: 2, Name: "Full Time"},
			model.JobType{ID: 3, Name: "Part Time"},
		),
		categories: NewStore(
			model.Category{ID: 1, Name: "Engineering", Description: "Software and hardware roles"},
			model.Category{ID: 2, Name: "Marketing"},
		),
		perks: NewStore(
			model.Perk{ID: 1, Name: "Certificate"},
			model.Perk{ID: 2, Name: "Flexible hours"},
		),
		universities: NewStore(
			model.University{ID: 1, Name: "City University", Email: "admin@cityuniversity.edu", CityID: 9},
		),
		videoCourses: NewStore(
			model.VideoCourse{ID: 1, Title: "Go for Beginners", CategoryID: 1, SubcategoryID: 1, Price: 499, IsPublished: true},
		),
		videoCategories: NewStore(
			model.VideoCategory{ID: 1, Name: "Programming"},
			model.VideoCategory{ID: 2, Name: "Soft Skills"},
		),
		videoSubcategories: NewStore(
			model.VideoSubcategory{ID: 1, Name: "Backend", CategoryID: 1},
			model.VideoSubcategory{ID: 2, Name: "Interviews", CategoryID: 2},
		),
		planTypes: NewStore(planTypes...),
		subscribePlans: NewStore(
			model.SubscribePlan{ID: 1, Name: "Student Premium", PlanTypeID: 7, Price: 299, DurationDays: 30, IsActive: true},
			model.SubscribePlan{ID: 2, Name: "Recruiter Pro", PlanTypeID: 14, Price: 4999, DurationDays: 90, IsActive: true},
		),
		universityStudents: NewStore(students...),
	}
}
