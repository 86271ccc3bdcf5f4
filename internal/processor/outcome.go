package processor

import (
	"errors"

	"codeberg.org/snonux/yiwen/internal/translation"
)

// NoticePinyinUnavailable is shown next to a Chinese translation that has no
// pinyin.
const NoticePinyinUnavailable = "pinyin is not available"

// Success is a displayable translation.
type Success struct {
	Translation string
	// Annotation is the pinyin, empty when absent
	Annotation string
	// Notice is a soft, non-blocking message such as NoticePinyinUnavailable
	Notice string
}

// Failure is a terminal error for one request.
type Failure struct {
	Kind    translation.ErrorKind
	Message string
}

// Outcome holds exactly one of Success or Failure.
type Outcome struct {
	Success *Success
	Failure *Failure
}

// OK reports whether the outcome is a success.
func (o Outcome) OK() bool {
	return o.Success != nil
}

// Superseded reports whether a newer request replaced this one.
func (o Outcome) Superseded() bool {
	return o.Failure != nil && o.Failure.Kind == translation.KindCanceled
}

func failure(err error) Outcome {
	var e *translation.Error
	if !errors.As(err, &e) {
		return Outcome{Failure: &Failure{Kind: translation.KindTransport, Message: translation.MsgRetry}}
	}

	message := e.Message
	switch e.Kind {
	case translation.KindInvalidInput, translation.KindCanceled:
	default:
		// Hard failures share one generic message
		message = translation.MsgRetry
	}
	return Outcome{Failure: &Failure{Kind: e.Kind, Message: message}}
}

func canceled() Outcome {
	return Outcome{Failure: &Failure{Kind: translation.KindCanceled, Message: translation.MsgCanceled}}
}
