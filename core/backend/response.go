// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/relabs-tech/jobly/core"
	"github.com/relabs-tech/jobly/core/logger"
	"github.com/relabs-tech/jobly/core/notify"
)

// errorBody is the body of all error responses. The message is a list of
// strings for schema violations and a plain string otherwise.
type errorBody struct {
	Error struct {
		Message interface{} `json:"message"`
		Status  int         `json:"status"`
	} `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	jsonData, err := json.MarshalWithOption(body, json.DisableHTMLEscape())
	if err != nil {
		http.Error(w, "Error 4701: cannot marshal response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(jsonData)
}

// fail writes the error response for err. Internal errors are logged with
// code, the client only sees the code.
func (b *Backend) fail(w http.ResponseWriter, r *http.Request, code int, err error) {
	rlog := logger.FromContext(r.Context())

	var body errorBody
	body.Error.Status = core.StatusCode(err)
	switch {
	case body.Error.Status == http.StatusInternalServerError:
		rlog.WithError(err).Errorf("Error %d", code)
		body.Error.Message = fmt.Sprintf("Error %d", code)
	default:
		rlog.WithError(err).Debugln("request failed with status", body.Error.Status)
		body.Error.Message = err.Error()
		var validation *core.ValidationError
		if errors.As(err, &validation) && len(validation.Details) > 0 {
			body.Error.Message = validation.Details
		}
	}
	writeJSON(w, body.Error.Status, body)
}

// decode validates the request body against schemaID and unmarshals it into target
func (b *Backend) decode(r *http.Request, schemaID string, target interface{}) error {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return core.NewValidationError("cannot read request body")
	}
	if len(data) == 0 {
		data = []byte("{}")
	}
	if err = b.jsonValidator.ValidateBytes(data, schemaID); err != nil {
		return err
	}
	if err = json.Unmarshal(data, target); err != nil {
		return core.NewValidationError("invalid json data: %s", err.Error())
	}
	return nil
}

// jobID returns the job id from the route parameter "id"
func jobID(r *http.Request) (int, error) {
	param := mux.Vars(r)["id"]
	id, err := strconv.Atoi(param)
	if err != nil {
		return 0, core.NewValidationError("invalid job id '%s'", param)
	}
	return id, nil
}

// raise passes an event to the notifier. Failures are logged only.
func (b *Backend) raise(ctx context.Context, event notify.Event) {
	if b.notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, notify.DefaultTimeout)
	defer cancel()
	if err := b.notifier.Notify(ctx, event); err != nil {
		logger.FromContext(ctx).WithError(err).Warnf("cannot raise %s event for %s %s", event.Operation, event.Resource, event.Key)
	}
}
