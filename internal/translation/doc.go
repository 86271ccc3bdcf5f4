// Package translation turns user text into translated text by calling one of
// two upstream gateways: a Lingva-compatible JSON gateway that answers with a
// single {"translation": ...} record, and the best-effort Google gtx endpoint
// that answers with nested arrays. Requests are validated before any network
// call and every failure is reported as a typed *Error.
package translation
