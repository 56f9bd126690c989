package main

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/judyrop/sns-catalog/apperrors"
	"github.com/judyrop/sns-catalog/store"
)

type pageQuery struct {
	Skip  int `form:"skip" binding:"gte=0"`
	Limit int `form:"limit" binding:"omitempty,gte=1,lte=1000"`
}

func bindPage(c *gin.Context) (store.Page, bool) {
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		_ = c.Error(apperrors.Invalid(err))
		return store.Page{}, false
	}
	return store.Page{Skip: q.Skip, Limit: q.Limit}, true
}

func bindID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 0)
	if err != nil || id == 0 {
		_ = c.Error(apperrors.BadRequest("Invalid id", err))
		return 0, false
	}
	return uint(id), true
}

// optionalID reads an id from the query string. Absent means nil.
func optionalID(c *gin.Context, key string) (*uint, bool) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil {
		_ = c.Error(apperrors.BadRequest("Invalid "+key, err))
		return nil, false
	}
	v := uint(id)
	return &v, true
}

type creator[T any] interface {
	Record() T
}

type updater interface {
	Changes() map[string]any
}

// resource serves list/get/create/update/delete for one table. The optional
// hooks run after binding and may reject the request with an *apperrors.Error.
type resource[T any, C creator[T], U updater] struct {
	name string
	repo *store.Repository[T]

	checkCreate func(ctx context.Context, req C) error
	checkUpdate func(ctx context.Context, id uint, req U) error
	remove      func(ctx context.Context, id uint) error
}

func (res *resource[T, C, U]) notFound() string { return res.name + " not found" }

func (res *resource[T, C, U]) register(g *gin.RouterGroup, path string) {
	g.GET(path, res.list(nil))
	g.POST(path, res.create)
	g.GET(path+"/:id", res.get(nil))
	g.PUT(path+"/:id", res.update)
	g.DELETE(path+"/:id", res.delete)
}

// registerPublic exposes the active rows read-only.
func (res *resource[T, C, U]) registerPublic(g *gin.RouterGroup, path string) {
	active := []store.Scope{store.Active}
	g.GET(path, res.list(active))
	g.GET(path+"/:id", res.get(active))
}

func (res *resource[T, C, U]) list(scopes []store.Scope) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, ok := bindPage(c)
		if !ok {
			return
		}
		items, err := res.repo.List(c.Request.Context(), page, scopes...)
		if err != nil {
			_ = c.Error(apperrors.FromDB(err, res.notFound()))
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

func (res *resource[T, C, U]) get(scopes []store.Scope) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := bindID(c, "id")
		if !ok {
			return
		}
		item, err := res.repo.Get(c.Request.Context(), id, scopes...)
		if err != nil {
			_ = c.Error(apperrors.FromDB(err, res.notFound()))
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func (res *resource[T, C, U]) create(c *gin.Context) {
	var req C
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.Invalid(err))
		return
	}
	ctx := c.Request.Context()
	if res.checkCreate != nil {
		if err := res.checkCreate(ctx, req); err != nil {
			_ = c.Error(apperrors.FromDB(err, res.notFound()))
			return
		}
	}
	item := req.Record()
	if err := res.repo.Create(ctx, &item); err != nil {
		_ = c.Error(apperrors.FromDB(err, res.notFound()))
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (res *resource[T, C, U]) update(c *gin.Context) {
	id, ok := bindID(c, "id")
	if !ok {
		return
	}
	var req U
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.Invalid(err))
		return
	}
	ctx := c.Request.Context()
	if res.checkUpdate != nil {
		if err := res.checkUpdate(ctx, id, req); err != nil {
			_ = c.Error(apperrors.FromDB(err, res.notFound()))
			return
		}
	}
	item, err := res.repo.Update(ctx, id, req.Changes())
	if err != nil {
		_ = c.Error(apperrors.FromDB(err, res.notFound()))
		return
	}
	c.JSON(http.StatusOK, item)
}

func (res *resource[T, C, U]) delete(c *gin.Context) {
	id, ok := bindID(c, "id")
	if !ok {
		return
	}
	remove := res.remove
	if remove == nil {
		remove = res.repo.Delete
	}
	if err := remove(c.Request.Context(), id); err != nil {
		_ = c.Error(apperrors.FromDB(err, res.notFound()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": res.name + " deleted successfully"})
}
