// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package apierror

// maskedMessage replaces an internal 5xx error's message in Prod, and in
// Staging when the status is 5xx; dev never masks. This is the only place
// the framework decides whether a message is "internal" enough to hide
// from clients.
const maskedMessage = "an internal error occurred"

// wireError is the JSON shape of the "error" object in the stable error
// envelope: {"error":{"type","message","fields"?}}.
type wireError struct {
	Type    string       `json:"type"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// Body is the full stable error envelope, optionally carrying a request id.
type Body struct {
	Error     wireError `json:"error"`
	RequestID string    `json:"request_id,omitempty"`
}

// Serialize renders e as the stable error body for the given environment
// and optional request id, masking the message when the environment policy
// says to.
func Serialize(e *Error, env Environment, requestID string) Body {
	message := e.Message
	if shouldMask(e.Status, env) {
		message = maskedMessage
	}
	return Body{
		Error: wireError{
			Type:    e.ErrCode,
			Message: message,
			Fields:  e.Fields,
		},
		RequestID: requestID,
	}
}

func shouldMask(status int, env Environment) bool {
	switch env {
	case Dev:
		return false
	case Staging:
		return status >= 500
	case Prod:
		return status >= 500
	default:
		return status >= 500
	}
}
