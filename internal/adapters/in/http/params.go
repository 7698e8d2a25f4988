package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
)

const (
	headerUserID    = "X-User-ID"
	headerActorID   = "X-Actor-ID"
	headerActorRole = "X-Actor-Role"
)

// actor is the caller of a state-changing request.
type actor struct {
	id     *kernel.UUID
	source order.ChangeSource
}

func bindPathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	var raw openapi_types.UUID
	err := runtime.BindStyledParameterWithLocation("simple", false, name, runtime.ParamLocationPath, ctx.Param(name), &raw)
	if err != nil {
		return kernel.UUID{}, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return kernel.UUIDFromBytes(raw[:])
}

func bindHeaderUUID(ctx echo.Context, name string) (*kernel.UUID, error) {
	value := ctx.Request().Header.Get(name)
	if value == "" {
		return nil, nil //nolint:nilnil // header is optional
	}

	var raw openapi_types.UUID
	err := runtime.BindStyledParameterWithLocation("simple", false, name, runtime.ParamLocationHeader, value, &raw)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// bindActor reads the acting user and role. Only managers and clients may
// act through the API; system changes originate inside the service.
func bindActor(ctx echo.Context) (actor, error) {
	id, err := bindHeaderUUID(ctx, headerActorID)
	if err != nil {
		return actor{}, err
	}

	role := ctx.Request().Header.Get(headerActorRole)
	source, err := order.ParseChangeSource(role)
	if err != nil {
		return actor{}, err
	}
	if source == order.SourceSystem {
		return actor{}, errs.NewValueIsInvalidErrorWithCause(headerActorRole, fmt.Errorf("%q is not accepted from callers", role))
	}
	return actor{id: id, source: source}, nil
}

// bindListFilter reads status, from, to, page and pageSize. Dates are whole
// UTC days and to is inclusive. Every optional destination is a pointer the
// binder allocates, status included, so status may repeat.
func bindListFilter(ctx echo.Context) (queries.ListFilter, error) {
	var (
		statuses *[]string
		from     *openapi_types.Date
		to       *openapi_types.Date
		page     *int
		pageSize *int
	)

	params := ctx.QueryParams()
	for _, p := range []struct {
		name string
		dest any
	}{
		{"status", &statuses},
		{"from", &from},
		{"to", &to},
		{"page", &page},
		{"pageSize", &pageSize},
	} {
		if err := runtime.BindQueryParameter("form", true, false, p.name, params, p.dest); err != nil {
			return queries.ListFilter{}, echo.NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("Invalid format for parameter %s: %s", p.name, err))
		}
	}

	filter := queries.ListFilter{}
	if statuses != nil {
		for _, s := range *statuses {
			status, err := order.ParseStatus(s)
			if err != nil {
				return queries.ListFilter{}, err
			}
			filter.Statuses = append(filter.Statuses, status)
		}
	}
	if from != nil {
		start := dayStart(from.Time)
		filter.From = &start
	}
	if to != nil {
		end := dayStart(to.Time).AddDate(0, 0, 1)
		filter.To = &end
	}
	if page != nil {
		filter.Page = *page
	}
	if pageSize != nil {
		filter.PageSize = *pageSize
	}
	return filter, nil
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
