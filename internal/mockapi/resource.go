package mockapi

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"placement_dashboard/internal/model"
	"placement_dashboard/internal/service"
	"placement_dashboard/pkg/logger"
	"placement_dashboard/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/schema"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// ErrNotFound 表示資料不存在
var ErrNotFound = errors.New("record not found")

var queryDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

// resource 是一個實體的 REST 端點
type resource[T model.Entity] struct {
	kind   model.Kind
	entity string
	store  *Store[T]
	media  *Media
	log    logger.Logger
}

func register[T model.Entity](api *gin.RouterGroup, write gin.HandlerFunc, kind model.Kind, entity string, store *Store[T], media *Media, log logger.Logger) {
	r := &resource[T]{
		kind:   kind,
		entity: entity,
		store:  store,
		media:  media,
		log:    log.With(zap.String("entity", string(kind))),
	}
	base := "/" + string(kind) + "/"
	api.GET(base, r.list)
	api.POST(base, write, r.create)
	api.PATCH(base+":id/", write, r.update)
	api.DELETE(base+":id/", write, r.remove)
}

func (r *resource[T]) list(c *gin.Context) {
	var params service.ListParams
	if err := queryDecoder.Decode(&params, c.Request.URL.Query()); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid query: "+err.Error())
		return
	}
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = defaultPageSize
	}
	if params.PageSize > maxPageSize {
		params.PageSize = maxPageSize
	}

	items := r.store.List(params.Search)
	count := len(items)
	start := (params.Page - 1) * params.PageSize
	if start > count {
		start = count
	}
	end := start + params.PageSize
	if end > count {
		end = count
	}

	var next, previous *string
	if end < count {
		next = pageLink(c, params.Page+1)
	}
	if params.Page > 1 {
		previous = pageLink(c, params.Page-1)
	}
	utils.PagedResponse(c, items[start:end], count, next, previous)
}

// pageLink 回傳相同查詢條件下另一頁的完整網址
func pageLink(c *gin.Context, page int) *string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	q := c.Request.URL.Query()
	q.Set("page", strconv.Itoa(page))
	u := url.URL{Scheme: scheme, Host: c.Request.Host, Path: c.Request.URL.Path, RawQuery: q.Encode()}
	s := u.String()
	return &s
}

func (r *resource[T]) create(c *gin.Context) {
	fields, ok := r.bind(c)
	if !ok {
		return
	}
	item, errs, err := r.store.Create(fields, validate[T])
	if r.failed(c, errs, err) {
		return
	}
	r.log.Info("record created", zap.Int64("id", item.Identifier()))
	utils.Created(c, r.entity+" created successfully", item)
}

func (r *resource[T]) update(c *gin.Context) {
	id, ok := r.id(c)
	if !ok {
		return
	}
	fields, ok := r.bind(c)
	if !ok {
		return
	}
	item, errs, err := r.store.Patch(id, fields, validate[T])
	if r.failed(c, errs, err) {
		return
	}
	r.log.Info("record updated", zap.Int64("id", id), zap.Int("fields", len(fields)))
	utils.Success(c, r.entity+" updated successfully", item)
}

func (r *resource[T]) remove(c *gin.Context) {
	id, ok := r.id(c)
	if !ok {
		return
	}
	if !r.store.Delete(id) {
		utils.NotFound(c)
		return
	}
	r.log.Info("record deleted", zap.Int64("id", id))
	utils.Success(c, r.entity+" deleted successfully", nil)
}

func (r *resource[T]) id(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		utils.NotFound(c)
		return 0, false
	}
	return id, true
}

// bind 讀取 JSON 或 multipart 請求，上傳的檔案保存後以網址取代
func (r *resource[T]) bind(c *gin.Context) (map[string]any, bool) {
	raw := map[string]any{}

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		form, err := c.MultipartForm()
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "Invalid form: "+err.Error())
			return nil, false
		}
		for k, vs := range form.Value {
			if len(vs) > 0 {
				raw[k] = vs[0]
			}
		}
		for k, fhs := range form.File {
			if len(fhs) == 0 {
				continue
			}
			path, err := r.media.Save(fhs[0])
			if err != nil {
				utils.ValidationFailed(c, map[string][]string{k: {err.Error()}})
				return nil, false
			}
			raw[k] = path
		}
	} else if err := c.ShouldBindJSON(&raw); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return nil, false
	}

	fields, errs := coerce[T](raw)
	if errs != nil {
		utils.ValidationFailed(c, errs)
		return nil, false
	}
	return fields, true
}

func (r *resource[T]) failed(c *gin.Context, errs map[string][]string, err error) bool {
	switch {
	case errors.Is(err, ErrNotFound):
		utils.NotFound(c)
	case err != nil:
		r.log.Error("store failed", zap.Error(err))
		utils.ServerError(c, fmt.Errorf("%s: %w", r.kind, err))
	case errs != nil:
		utils.ValidationFailed(c, errs)
	default:
		return false
	}
	return true
}

// validate 以結構上的 validate 標籤檢查資料
func validate[T any](item T) map[string][]string {
	return utils.Messages(utils.GetValidator().Validate(item))
}
