package models

import "errors"

// ErrInvalidSignature is returned when X-Line-Signature is missing or does not match the body.
var ErrInvalidSignature = errors.New("invalid signature")

// ErrMalformedPostback is returned when postback data does not decode into key/value pairs
// or lacks the text to translate.
var ErrMalformedPostback = errors.New("malformed postback")

// ErrNoLanguage is returned when a translation is requested without a target language.
var ErrNoLanguage = errors.New("no target language selected")

// ErrNoTranslation is returned when the service answered without any translation.
var ErrNoTranslation = errors.New("no translation returned")

// ErrReplyDelivery wraps every failed reply call. Reply tokens are single use so
// these are never retried.
var ErrReplyDelivery = errors.New("reply delivery failed")

// ErrQueueFull is returned when the postback worker pool cannot accept more work.
var ErrQueueFull = errors.New("postback queue is full")
