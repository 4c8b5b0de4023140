// Package controllers is the HTTP boundary. Controllers bind and validate
// input, call one service, and translate apperr values into status codes.
// No business rules live here.
package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/thanhvudev/furnimart/app/apperr"
	"github.com/thanhvudev/furnimart/app/models"
	"github.com/thanhvudev/furnimart/app/repositories"
	"github.com/thanhvudev/furnimart/pkg/ctx"
	"github.com/thanhvudev/furnimart/pkg/logger"
	"github.com/thanhvudev/furnimart/pkg/middleware"
	"github.com/thanhvudev/furnimart/pkg/session"
)

// Session keys for the storefront state.
const (
	sessionCartKey     = "cart"
	sessionDeliveryKey = "delivery_info"
)

// fail maps a service error onto the HTTP response. Anything outside the
// apperr taxonomy is an internal fault: logged with request context, hidden
// from the client.
func fail(c *ctx.Context, err error) {
	if v, ok := apperr.AsValidation(err); ok {
		c.ValidationError(v.Fields)
		return
	}
	if apperr.IsNotFound(err) {
		c.NotFound(err.Error())
		return
	}
	if apperr.IsConflict(err) {
		c.Error(http.StatusConflict, err.Error())
		return
	}
	if apperr.IsBusinessRule(err) {
		c.Error(http.StatusBadRequest, err.Error())
		return
	}

	logger.WithCtx(c.Context()).Error("request failed", "error", err, "path", c.Path())
	c.Error(http.StatusInternalServerError, "Something went wrong. Please try again.")
}

// paramID parses a {id} path parameter.
func paramID(c *ctx.Context) (uint, bool) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || n == 0 {
		c.Error(http.StatusBadRequest, "Invalid identifier.")
		return 0, false
	}
	return uint(n), true
}

// pageQuery parses ?page= and ?per_page= with the usual defaults.
func pageQuery(c *ctx.Context) (page, perPage int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "10"))
	return page, perPage
}

// currentUserID returns the authenticated user's ID. Routes behind
// AuthMiddleware always have one.
func currentUserID(c *ctx.Context) (uint, bool) {
	id, ok := middleware.UserIDFromCtx(c.R)
	if !ok {
		c.Unauthorized()
	}
	return id, ok
}

// formUpload extracts an optional multipart file field. Returns (nil, true)
// when the field is simply absent.
func formUpload(c *ctx.Context, field string) (*repositories.Upload, bool) {
	if err := c.R.ParseMultipartForm(repositories.MaxImageSize + 1<<20); err != nil {
		c.Error(http.StatusBadRequest, "Invalid form payload.")
		return nil, false
	}

	file, header, err := c.R.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, true
		}
		c.Error(http.StatusBadRequest, "Invalid file upload.")
		return nil, false
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, repositories.MaxImageSize+1))
	if err != nil {
		c.Error(http.StatusBadRequest, "Could not read the uploaded file.")
		return nil, false
	}

	return &repositories.Upload{
		Filename: header.Filename,
		MIME:     header.Header.Get("Content-Type"),
		Size:     int64(len(content)),
		Content:  content,
	}, true
}

// sessionCart decodes the cart out of the session. Sessions round-trip
// through JSON, so the stored value comes back as generic maps.
func sessionCart(sess *session.Session) models.Cart {
	v, ok := sess.Get(sessionCartKey)
	if !ok {
		return models.Cart{}
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return models.Cart{}
	}
	var cart models.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		return models.Cart{}
	}
	return cart
}

// saveCart writes the cart back into the session and persists it.
func saveCart(c *ctx.Context, sess *session.Session, cart models.Cart) {
	sess.Set(sessionCartKey, cart)
	sess.Save(c.W) //nolint:errcheck
}

// sessionDelivery decodes the captured delivery block, if any.
func sessionDelivery(sess *session.Session) (models.Delivery, bool) {
	v, ok := sess.Get(sessionDeliveryKey)
	if !ok {
		return models.Delivery{}, false
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return models.Delivery{}, false
	}
	var d models.Delivery
	if err := json.Unmarshal(raw, &d); err != nil {
		return models.Delivery{}, false
	}
	return d, d.UserName != ""
}
