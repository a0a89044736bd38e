package handler

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/vfg2006/flow-erp-api/internal/domain"
	"github.com/vfg2006/flow-erp-api/pkg/utils"
)

const maxBodySize = 5 << 20

var (
	validate = validator.New(validator.WithRequiredStructEnabled())

	errEmptyBody    = errors.New("corpo da requisição vazio")
	errPartialRange = errors.New("start_date e end_date devem ser informados juntos")
)

// decodeBody lê o JSON do corpo e valida as tags `validate` do destino.
// Os detalhes de validação voltam por campo.
func decodeBody(r *http.Request, dst any) (map[string]string, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler corpo da requisição")
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, errEmptyBody
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar requisição")
	}

	if err := validate.Struct(dst); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			details := make(map[string]string, len(validationErrs))
			for _, fieldErr := range validationErrs {
				details[fieldErr.Field()] = fieldErr.Tag()
			}
			return details, err
		}
		return nil, err
	}

	return nil, nil
}

// parseDateRange lê start_date e end_date. Sem nenhum dos dois, retorna nil
// e a visão aplica o período padrão.
func parseDateRange(r *http.Request) (*domain.DateRange, error) {
	query := r.URL.Query()
	start := strings.TrimSpace(query.Get("start_date"))
	end := strings.TrimSpace(query.Get("end_date"))

	if start == "" && end == "" {
		return nil, nil
	}
	if start == "" || end == "" {
		return nil, errPartialRange
	}

	if _, err := utils.ParseDate(start); err != nil {
		return nil, errors.Wrapf(domain.ErrInvalidDateRange, "start_date %q", start)
	}
	if _, err := utils.ParseDate(end); err != nil {
		return nil, errors.Wrapf(domain.ErrInvalidDateRange, "end_date %q", end)
	}

	dateRange := &domain.DateRange{Start: start, End: end}
	if err := dateRange.Validate(); err != nil {
		return nil, err
	}

	return dateRange, nil
}

func pathParam(r *http.Request, name string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(name)
}

func intPathParam(r *http.Request, name string) (int, error) {
	return strconv.Atoi(pathParam(r, name))
}

func queryInt(r *http.Request, name string, fallback int) int {
	value, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return fallback
	}
	return value
}
