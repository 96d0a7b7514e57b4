// Package model 定義 dashboard 使用的實體與請求結構。
package model

import "strings"

// Kind 是實體的 REST 資源名稱，也是 /api/v1/<kind>/ 的路徑段
type Kind string

const (
	KindCompanies          Kind = "companies"
	KindCities             Kind = "cities"
	KindSkills             Kind = "skills"
	KindDesignations       Kind = "designations"
	KindJobTypes           Kind = "job-types"
	KindCategories         Kind = "categories"
	KindPerks              Kind = "perks"
	KindUniversities       Kind = "universities"
	KindVideoCourses       Kind = "video-courses"
	KindVideoCategories    Kind = "video-categories"
	KindVideoSubcategories Kind = "video-subcategories"
	KindPlanTypes          Kind = "plan-types"
	KindSubscribePlans     Kind = "subscribe-plans"
	KindUniversityStudents Kind = "university-students"
)

// Kinds 列出所有實體，順序即 CLI 顯示順序
var Kinds = []Kind{
	KindCompanies,
	KindCities,
	KindSkills,
	KindDesignations,
	KindJobTypes,
	KindCategories,
	KindPerks,
	KindUniversities,
	KindVideoCourses,
	KindVideoCategories,
	KindVideoSubcategories,
	KindPlanTypes,
	KindSubscribePlans,
	KindUniversityStudents,
}

// ParseKind 將字串轉為 Kind，接受底線或連字號
func ParseKind(s string) (Kind, bool) {
	s = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", "-"))
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Path 回傳集合路徑，例如 /api/v1/cities/
func (k Kind) Path() string {
	return "/api/v1/" + string(k) + "/"
}

// Entity 由所有實體實作
type Entity interface {
	// Identifier 回傳主鍵
	Identifier() int64
	// SearchText 回傳可被搜尋的文字欄位
	SearchText() []string
}
