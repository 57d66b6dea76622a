package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		validate.RegisterStructValidation(gridAlignment, Config{})
	})
	return validate
}

// gridAlignment checks that the window and the start position sit on the
// grid and that the snake starts inside the window.
func gridAlignment(sl validator.StructLevel) {
	c := sl.Current().Interface().(Config)
	cell := c.Grid.CellSize
	if cell <= 0 {
		return
	}

	if c.Window.Width%cell != 0 {
		sl.ReportError(c.Window.Width, "window.width", "Width", "multiple_of_cell", fmt.Sprint(cell))
	}
	if c.Window.Height%cell != 0 {
		sl.ReportError(c.Window.Height, "window.height", "Height", "multiple_of_cell", fmt.Sprint(cell))
	}
	if c.Start.X%cell != 0 {
		sl.ReportError(c.Start.X, "start.x", "X", "multiple_of_cell", fmt.Sprint(cell))
	}
	if c.Start.Y%cell != 0 {
		sl.ReportError(c.Start.Y, "start.y", "Y", "multiple_of_cell", fmt.Sprint(cell))
	}
	if c.Start.X >= c.Window.Width {
		sl.ReportError(c.Start.X, "start.x", "X", "inside_window", fmt.Sprint(c.Window.Width))
	}
	if c.Start.Y >= c.Window.Height {
		sl.ReportError(c.Start.Y, "start.y", "Y", "inside_window", fmt.Sprint(c.Window.Height))
	}
}

// Validate checks field ranges and grid alignment. Failures wrap ErrInvalid
// and list every offending key.
func Validate(c Config) error {
	err := validatorInstance().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("config: validate: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	key := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required":
		return key + " is required"
	case "multiple_of_cell":
		return fmt.Sprintf("%s=%v is not a multiple of cell size %s", key, fe.Value(), fe.Param())
	case "inside_window":
		return fmt.Sprintf("%s=%v is outside the window (%s)", key, fe.Value(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s=%q must be one of [%s]", key, fe.Value(), fe.Param())
	case "hexcolor", "len":
		return fmt.Sprintf("%s=%q is not a #RRGGBB color", key, fe.Value())
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("%s=%v fails %s=%s", key, fe.Value(), fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("%s=%v fails %s", key, fe.Value(), fe.Tag())
	}
}
