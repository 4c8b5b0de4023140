// Package bind decodes a JSON request body into an input struct and runs the
// struct-tag validation in one step. Controllers use it for every JSON
// endpoint, e.g. the delivery-info capture before checkout:
//
//	var in models.Delivery
//	if errs, err := bind.JSON(c.R, &in); err != nil {
//	    c.Error(http.StatusBadRequest, err.Error())
//	    return
//	} else if errs != nil {
//	    c.ValidationError(errs)
//	    return
//	}
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/thanhvudev/furnimart/config"
	"github.com/thanhvudev/furnimart/pkg/validate"
)

// maxBodyBytes returns the MAX_BODY_BYTES limit. The default of 4 MB leaves
// headroom over the 2 MB image cap for multipart overhead.
func maxBodyBytes() int64 {
	n, err := strconv.ParseInt(config.Get("MAX_BODY_BYTES", "4194304"), 10, 64)
	if err != nil || n <= 0 {
		return 4 << 20 // 4 MB
	}
	return n
}

// JSON decodes r.Body into dest and validates it. A non-nil errs return is
// the field error map for a 422; a non-nil err means the body itself was
// unusable (malformed JSON, or larger than MAX_BODY_BYTES).
func JSON(r *http.Request, dest interface{}) (errs map[string]string, err error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes())

	dec := json.NewDecoder(r.Body)
	if err = dec.Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	errs = validate.Struct(dest)
	if validate.HasErrors(errs) {
		return errs, nil
	}

	return nil, nil
}
