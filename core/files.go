package core

import "strings"

// FileStatus describes one uploaded file as returned by /file/list and /file/status.
type FileStatus struct {
	FileURI              string `json:"fileUri"`
	StringCount          int    `json:"stringCount"`
	WordCount            int    `json:"wordCount"`
	ApprovedStringCount  int    `json:"approvedStringCount"`
	CompletedStringCount int    `json:"completedStringCount"`
	LastUploaded         string `json:"lastUploaded"`
	FileType             string `json:"fileType"`
	CallbackURL          string `json:"callbackUrl,omitempty"`
}

// FileList is returned by /file/list.
type FileList struct {
	FileCount int          `json:"fileCount"`
	FileList  []FileStatus `json:"fileList"`
}

// FileLocaleLastModified is one entry of /file/last_modified.
type FileLocaleLastModified struct {
	Locale       string `json:"locale"`
	LastModified Time   `json:"lastModified"`
}

// FileLastModified is returned by /file/last_modified.
type FileLastModified struct {
	Items []FileLocaleLastModified `json:"items"`
}

// UploadFileData is returned by /file/upload.
type UploadFileData struct {
	StringCount int  `json:"stringCount"`
	WordCount   int  `json:"wordCount"`
	OverWritten bool `json:"overWritten"`
}

// EmptyResponse is the data type of calls that return no payload.
type EmptyResponse struct{}

// FileType is a supported source file format. The string value is the
// enum name used by /file/list filters; Identifier is the upload value.
type FileType string

const (
	FileTypeAndroid        FileType = "ANDROID"
	FileTypeIOS            FileType = "IOS"
	FileTypeGettext        FileType = "GETTEXT"
	FileTypeHTML           FileType = "HTML"
	FileTypeJavaProperties FileType = "JAVA_PROPERTIES"
	FileTypeYAML           FileType = "YAML"
	FileTypeXLIFF          FileType = "XLIFF"
	FileTypeXML            FileType = "XML"
	FileTypeJSON           FileType = "JSON"
	FileTypeDOCX           FileType = "DOCX"
	FileTypePPTX           FileType = "PPTX"
	FileTypeXLSX           FileType = "XLSX"
	FileTypeIDML           FileType = "IDML"
	FileTypeRESX           FileType = "RESX"
	FileTypePlainText      FileType = "PLAIN_TEXT"
	FileTypeCSV            FileType = "CSV"
)

type fileTypeInfo struct {
	identifier string
	text       bool
}

var fileTypes = map[FileType]fileTypeInfo{
	FileTypeAndroid:        {"android", true},
	FileTypeIOS:            {"ios", true},
	FileTypeGettext:        {"gettext", true},
	FileTypeHTML:           {"html", true},
	FileTypeJavaProperties: {"javaProperties", true},
	FileTypeYAML:           {"yaml", true},
	FileTypeXLIFF:          {"xliff", true},
	FileTypeXML:            {"xml", true},
	FileTypeJSON:           {"json", true},
	FileTypeDOCX:           {"docx", false},
	FileTypePPTX:           {"pptx", false},
	FileTypeXLSX:           {"xlsx", false},
	FileTypeIDML:           {"idml", false},
	FileTypeRESX:           {"resx", true},
	FileTypePlainText:      {"plaintext", true},
	FileTypeCSV:            {"csv", true},
}

// Valid reports whether t is a known file type.
func (t FileType) Valid() bool {
	_, ok := fileTypes[t]
	return ok
}

// Identifier returns the value the upload endpoint expects for fileType.
func (t FileType) Identifier() string {
	if info, ok := fileTypes[t]; ok {
		return info.identifier
	}
	return strings.ToLower(string(t))
}

// IsText reports whether the format is text and so uploaded with a charset.
func (t FileType) IsText() bool {
	return fileTypes[t].text
}

// ContentType is the multipart part content type for this format.
func (t FileType) ContentType(charset string) string {
	if !t.IsText() {
		return "application/octet-stream"
	}
	if charset == "" {
		return "text/plain"
	}
	return "text/plain; charset=" + charset
}

// RetrievalType selects which translation state /file/get returns.
type RetrievalType string

const (
	RetrievalPending   RetrievalType = "pending"
	RetrievalPublished RetrievalType = "published"
	RetrievalPseudo    RetrievalType = "pseudo"
)

// Valid reports whether r is a known retrieval type.
func (r RetrievalType) Valid() bool {
	switch r {
	case RetrievalPending, RetrievalPublished, RetrievalPseudo:
		return true
	}
	return false
}
