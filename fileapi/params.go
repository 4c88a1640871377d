package fileapi

import (
	"net/url"
	"strconv"
	"time"

	"smartling/core"
)

// Query parameter names understood by the File API.
const (
	ParamAPIKey                   = "apiKey"
	ParamProjectID                = "projectId"
	ParamFileURI                  = "fileUri"
	ParamNewFileURI               = "newFileUri"
	ParamFileType                 = "fileType"
	ParamFileTypes                = "fileTypes"
	ParamLocale                   = "locale"
	ParamRetrievalType            = "retrievalType"
	ParamLimit                    = "limit"
	ParamOffset                   = "offset"
	ParamLastUploadedAfter        = "lastUploadedAfter"
	ParamLastUploadedBefore       = "lastUploadedBefore"
	ParamLastModifiedAfter        = "lastModifiedAfter"
	ParamURIMask                  = "uriMask"
	ParamConditions               = "conditions"
	ParamOrderBy                  = "orderBy"
	ParamCallbackURL              = "callbackUrl"
	ParamApproved                 = "approved"
	ParamLocalesToApprove         = "localesToApprove"
	ParamOverwriteApprovedLocales = "overwriteApprovedLocales"
	ParamFile                     = "file"
)

// FileListSearchParams filters /file/list. Zero values and nil pointers are
// left out of the request.
type FileListSearchParams struct {
	// Locale restricts string counts to one locale.
	Locale string
	// URIMask is a SQL-like pattern matched against file URIs.
	URIMask string
	// FileTypes lists enum names, e.g. "JAVA_PROPERTIES"; each is sent as its own fileTypes value.
	FileTypes []string
	// LastUploadedAfter and LastUploadedBefore bound the upload date.
	LastUploadedAfter  *time.Time
	LastUploadedBefore *time.Time
	// Offset and Limit page through the result.
	Offset *int
	Limit  *int
	// Conditions such as "haveAllTranslated"; repeated per value.
	Conditions []string
	// OrderBy fields, repeated per value.
	OrderBy []string
}

func (p *FileListSearchParams) apply(q url.Values) {
	if p == nil {
		return
	}
	setIfNotEmpty(q, ParamLocale, p.Locale)
	setIfNotEmpty(q, ParamURIMask, p.URIMask)
	addAll(q, ParamFileTypes, p.FileTypes)
	setDate(q, ParamLastUploadedAfter, p.LastUploadedAfter)
	setDate(q, ParamLastUploadedBefore, p.LastUploadedBefore)
	setInt(q, ParamOffset, p.Offset)
	setInt(q, ParamLimit, p.Limit)
	addAll(q, ParamConditions, p.Conditions)
	addAll(q, ParamOrderBy, p.OrderBy)
}

// FileUploadParams configures /file/upload.
type FileUploadParams struct {
	// FileURI identifies the file in the project. Defaults to the uploaded file's base name.
	FileURI string
	// FileType is required.
	FileType core.FileType
	// Approved authorizes the content for translation on upload.
	Approved *bool
	// CallbackURL receives a GET when a locale is fully translated.
	CallbackURL string
	// LocalesToApprove is sent as localesToApprove[0], localesToApprove[1], ...
	LocalesToApprove []string
	// OverwriteApprovedLocales replaces, rather than adds to, the approved locales.
	OverwriteApprovedLocales *bool
}

func (p *FileUploadParams) apply(q url.Values) {
	setIfNotEmpty(q, ParamFileURI, p.FileURI)
	if p.FileType != "" {
		q.Set(ParamFileType, p.FileType.Identifier())
	}
	setBool(q, ParamApproved, p.Approved)
	setIfNotEmpty(q, ParamCallbackURL, p.CallbackURL)
	for i, locale := range p.LocalesToApprove {
		q.Set(ParamLocalesToApprove+"["+strconv.Itoa(i)+"]", locale)
	}
	setBool(q, ParamOverwriteApprovedLocales, p.OverwriteApprovedLocales)
}

// Bool returns a pointer to v, for optional parameter fields.
func Bool(v bool) *bool { return &v }

// Int returns a pointer to v, for optional parameter fields.
func Int(v int) *int { return &v }

// Time returns a pointer to v, for optional parameter fields.
func Time(v time.Time) *time.Time { return &v }

func setIfNotEmpty(q url.Values, name, value string) {
	if value != "" {
		q.Set(name, value)
	}
}

func addAll(q url.Values, name string, values []string) {
	for _, v := range values {
		q.Add(name, v)
	}
}

func setDate(q url.Values, name string, t *time.Time) {
	if t != nil {
		q.Set(name, core.FormatDate(*t))
	}
}

func setInt(q url.Values, name string, v *int) {
	if v != nil {
		q.Set(name, strconv.Itoa(*v))
	}
}

func setBool(q url.Values, name string, v *bool) {
	if v != nil {
		q.Set(name, strconv.FormatBool(*v))
	}
}
