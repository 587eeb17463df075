package gqlserve

import (
	"io"
	"mime"
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// NewOperationParamsFromHTTP builds OperationParams from an HTTP request.
// Query string parameters are read first, then overridden by the body for
// "application/json" and "application/graphql" POSTs. If an error is returned,
// the status code will indicate the appropriate response, e.g. 400 for
// malformed requests or 405 for unsupported methods.
func NewOperationParamsFromHTTP(r *http.Request) (*OperationParams, int, error) {
	switch r.Method {
	case http.MethodGet, http.MethodPost:
	default:
		return nil, http.StatusMethodNotAllowed, errors.New("unsupported method")
	}

	params := &OperationParams{}
	values := r.URL.Query()
	params.Query = values.Get("query")
	params.QueryID = values.Get("queryId")
	params.OperationName = values.Get("operationName")
	if variables := values.Get("variables"); variables != "" {
		if err := jsoniter.UnmarshalFromString(variables, &params.Variables); err != nil {
			return nil, http.StatusBadRequest, errors.Wrap(err, "malformed variables parameter")
		}
	}
	if extensions := values.Get("extensions"); extensions != "" {
		if err := jsoniter.UnmarshalFromString(extensions, &params.Extensions); err != nil {
			return nil, http.StatusBadRequest, errors.Wrap(err, "malformed extensions parameter")
		}
	}

	if r.Method == http.MethodPost {
		contentType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		switch contentType {
		case "application/json":
			var body struct {
				Query         string                 `json:"query"`
				QueryID       string                 `json:"queryId"`
				OperationName string                 `json:"operationName"`
				Variables     map[string]interface{} `json:"variables"`
				Extensions    map[string]interface{} `json:"extensions"`
			}
			if err := jsoniter.NewDecoder(r.Body).Decode(&body); err != nil {
				return nil, http.StatusBadRequest, errors.Wrap(err, "malformed request body")
			}
			if body.Query != "" {
				params.Query = body.Query
			}
			if body.QueryID != "" {
				params.QueryID = body.QueryID
			}
			if body.OperationName != "" {
				params.OperationName = body.OperationName
			}
			if body.Variables != nil {
				params.Variables = body.Variables
			}
			if body.Extensions != nil {
				params.Extensions = body.Extensions
			}
		case "application/graphql":
			body, err := readRequestBody(r)
			if err != nil {
				return nil, http.StatusBadRequest, err
			}
			params.Query = string(body)
		default:
			return nil, http.StatusBadRequest, errors.New("unsupported content type")
		}
	}

	if err := params.Validate(); err != nil {
		return nil, http.StatusBadRequest, err
	}
	return params, http.StatusOK, nil
}

// ServeGraphQL executes the operation described by an HTTP request and writes
// the JSON result. Request errors produce a 400 with a conventional error
// envelope; configuration errors are logged and produce an opaque 500.
func (s *Server) ServeGraphQL(w http.ResponseWriter, r *http.Request) {
	params, code, err := NewOperationParamsFromHTTP(r)
	if err != nil {
		http.Error(w, err.Error(), code)
		return
	}

	result, err := s.ExecuteOperation(r.Context(), params)
	if err != nil {
		if isClientSafe(err) {
			writeJSONResponse(w, http.StatusBadRequest, &Result{
				Errors: []*Error{{Message: err.Error()}},
			})
		} else {
			s.logger.WithError(err).Error("unable to execute graphql operation")
			http.Error(w, redactedErrorMessage, http.StatusInternalServerError)
		}
		return
	}
	writeJSONResponse(w, http.StatusOK, result)
}

func readRequestBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(r.Body)
	return body, errors.Wrap(err, "error reading request body")
}

func writeJSONResponse(w http.ResponseWriter, code int, result *Result) {
	body, err := jsoniter.Marshal(result)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(code)
	w.Write(body)
}
