package service

import "cv-insight-be/internal/pkg/serverutils"

// Sentinel errors shared by the services. They carry HTTP status codes so
// the error middleware can map them without string matching.
var (
	ErrDuplicateDocument = serverutils.NewConflictError("document already indexed")
	ErrDocumentNotFound  = serverutils.NewNotFoundError("document not found")
	ErrSessionNotFound   = serverutils.NewNotFoundError("session not found")
	ErrOnlyPDFAccepted   = serverutils.NewBadRequestError("only PDF files are accepted")
	ErrUnreadablePDF     = serverutils.NewBadRequestError("could not extract text from PDF")
)
