package resource

import "placement_dashboard/internal/model"

// Paging 是實體的分頁方式
type Paging int

const (
	// PagingServer 由伺服器分頁，Count 為伺服器篩選後的總數
	PagingServer Paging = iota
	// PagingClient 讀取整個集合後在本地篩選與切頁
	PagingClient
)

func (p Paging) String() string {
	if p == PagingClient {
		return "client"
	}
	return "server"
}

// Registry 記錄每個實體的分頁方式。這是逐一決定的，不是通則。
var Registry = map[model.Kind]Paging{
	model.KindCompanies:          PagingServer,
	model.KindCities:             PagingServer,
	model.KindSkills:             PagingServer,
	model.KindDesignations:       PagingServer,
	model.KindJobTypes:           PagingServer,
	model.KindCategories:         PagingServer,
	model.KindPerks:              PagingServer,
	model.KindUniversities:       PagingServer,
	model.KindVideoCourses:       PagingServer,
	model.KindVideoCategories:    PagingServer,
	model.KindVideoSubcategories: PagingServer,
	model.KindPlanTypes:          PagingClient,
	model.KindSubscribePlans:     PagingClient,
	model.KindUniversityStudents: PagingServer,
}

// PagingOf 回傳實體的分頁方式，未登記的實體使用伺服器分頁
func PagingOf(kind model.Kind) Paging {
	if p, ok := Registry[kind]; ok {
		return p
	}
	return PagingServer
}
