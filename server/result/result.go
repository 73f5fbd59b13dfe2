// Package result contains results that are used to write out API responses.
package result

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// OK returns a Result containing an HTTP-200 along with a more detailed
// message (if desired; if none is provided it defaults to a generic one)
// that is not displayed to the user.
func OK(respObj interface{}, internalMsg ...interface{}) Result {
	internalMsgFmt := "OK"
	var msgArgs []interface{}
	if len(internalMsg) >= 1 {
		internalMsgFmt = internalMsg[0].(string)
		msgArgs = internalMsg[1:]
	}

	return Response(http.StatusOK, respObj, internalMsgFmt, msgArgs...)
}

// BadRequest returns a Result containing an HTTP-400 along with a more
// detailed message (if desired; if none is provided it defaults to a
// generic one) that is not displayed to the user.
func BadRequest(userMsg string, internalMsg ...interface{}) Result {
	internalMsgFmt := "bad request"
	var msgArgs []interface{}
	if len(internalMsg) >= 1 {
		internalMsgFmt = internalMsg[0].(string)
		msgArgs = internalMsg[1:]
	}

	return Err(http.StatusBadRequest, userMsg, internalMsgFmt, msgArgs...)
}

// InternalServerError returns a Result containing an HTTP-500 response
// along with a more detailed message that is not displayed to the user. If
// internalMsg is provided the first argument must be a string that is the
// format string and any subsequent args are passed to Sprintf with the
// first as the format string.
func InternalServerError(internalMsg ...interface{}) Result {
	internalMsgFmt := "internal server error"
	var msgArgs []interface{}
	if len(internalMsg) >= 1 {
		internalMsgFmt = internalMsg[0].(string)
		msgArgs = internalMsg[1:]
	}

	return Err(http.StatusInternalServerError, "An internal server error occurred", internalMsgFmt, msgArgs...)
}

// Response builds a successful, non-error Result. respObj MUST NOT be nil.
// If additional values are provided they are given to internalMsg as a
// format string.
func Response(status int, respObj interface{}, internalMsg string, v ...interface{}) Result {
	msg := fmt.Sprintf(internalMsg, v...)
	return Result{
		IsJSON:      true,
		IsErr:       false,
		Status:      status,
		InternalMsg: msg,
		resp:        respObj,
	}
}

// Err builds an error Result whose JSON body is an ErrorResponse carrying
// userMsg. If additional values are provided they are given to internalMsg
// as a format string.
func Err(status int, userMsg, internalMsg string, v ...interface{}) Result {
	msg := fmt.Sprintf(internalMsg, v...)
	return Result{
		IsJSON:      true,
		IsErr:       true,
		Status:      status,
		InternalMsg: msg,
		resp: ErrorResponse{
			Error:  userMsg,
			Status: status,
		},
	}
}

// Result is the outcome of handling one request: an HTTP status, a JSON
// body, and an internal-only message for logging.
type Result struct {
	Status      int
	IsErr       bool
	IsJSON      bool
	InternalMsg string

	resp interface{}

	// set by calling PrepareMarshaledResponse.
	respJSONBytes []byte
}

// PrepareMarshaledResponse sets respJSONBytes to the marshaled version of
// the response if required. If required, and there is a problem marshaling,
// an error is returned. If not required, nil error is always returned.
//
// If PrepareMarshaledResponse has been successfully called (returning a nil
// error) at least once for r, calling this method again has no effect and
// returns nil.
func (r *Result) PrepareMarshaledResponse() error {
	if r.respJSONBytes != nil {
		return nil
	}

	if r.IsJSON && r.Status != http.StatusNoContent {
		var err error
		r.respJSONBytes, err = json.Marshal(r.resp)
		if err != nil {
			return err
		}
	}

	return nil
}

func (r Result) WriteResponse(w http.ResponseWriter) {
	// if this hasn't been properly created, panic
	if r.Status == 0 {
		panic("result not populated")
	}

	err := r.PrepareMarshaledResponse()
	if err != nil {
		panic(fmt.Sprintf("could not marshal response: %s", err.Error()))
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(r.Status)

	if r.Status != http.StatusNoContent {
		w.Write(r.respJSONBytes)
	}
}
