// Package ginbinding registers the validkit tags on gin's binding engine, so
// that ShouldBind and friends apply them to request structs. gin reads rules
// from the `binding` struct tag:
//
//	type CommentRequest struct {
//	    Author string `json:"author" binding:"required,nospecialchars=-_"`
//	    Body   string `json:"body" binding:"noscript"`
//	}
//
//	func main() {
//	    if err := ginbinding.Register(); err != nil {
//	        log.Fatal(err)
//	    }
//	    r := gin.Default()
//	    r.POST("/comments", func(c *gin.Context) {
//	        var req CommentRequest
//	        if err := c.ShouldBindJSON(&req); err != nil {
//	            c.JSON(http.StatusBadRequest, ginbinding.Errors(err))
//	            return
//	        }
//	    })
//	}
package ginbinding

import (
	"errors"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/gobeaver/validkit"
)

// Engine returns gin's validator engine, or ErrUnsupportedEngine when gin
// has been configured with a different validator.
func Engine() (*validator.Validate, error) {
	engine, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok || engine == nil {
		return nil, validkit.ErrUnsupportedEngine
	}
	return engine, nil
}

// Register binds the validkit tags to gin's engine.
func Register(opts ...validkit.Option) error {
	engine, err := Engine()
	if err != nil {
		return err
	}
	return validkit.Register(engine, opts...)
}

// Wrap binds the validkit tags to gin's engine and returns a Validate on it,
// for whole-object rules and message rendering.
func Wrap(opts ...validkit.Option) (*validkit.Validate, error) {
	engine, err := Engine()
	if err != nil {
		return nil, err
	}
	return validkit.Wrap(engine, opts...)
}

// Errors converts a binding error into validkit.ValidationErrors with
// rendered messages. Errors that are not validation failures, such as
// malformed JSON, are returned as a single ValidationError of type other.
func Errors(err error) validkit.ValidationErrors {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return validkit.ValidationErrors{{
			Type:    validkit.ErrorTypeOther,
			Message: err.Error(),
		}}
	}

	out := make(validkit.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, validkit.NewValidationError(fe))
	}
	return out
}
