package core

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	fileListBody = `{"response":{"data":{"fileCount": 1, "fileList": [{"fileUri": "fileUri", "stringCount": 2, "wordCount": 3, "approvedStringCount": 4, "completedStringCount": 5, "lastUploaded": "lastDate", "fileType": "JAVA_PROPERTIES", "callbackUrl": "callbackUrl"}]},"code":"SUCCESS","messages":[]}}`
	emptyBody    = `{"response":{"data": null,"code":"SUCCESS","messages":[]}}`
	uploadBody   = `{"response":{"data": {"stringCount": 1, "wordCount": 2, "overWritten": true},"code":"SUCCESS","messages":[]}}`
	invalidBody  = `{"response":{"data":null,"code":"VALIDATION_ERROR","messages":["apiKey parameter is required","apiVersion parameter is required"]}}`
	unknownBody  = `{"response":{"data":null,"code":"UNKNOWN_STATUS","messages":["apiKey parameter is required","apiVersion parameter is required"]}}`
)

func TestDecodeEnvelope_FileList(t *testing.T) {
	env, err := DecodeEnvelope[FileList]([]byte(fileListBody))
	require.NoError(t, err)
	require.True(t, env.Success())
	require.NotNil(t, env.Data)

	assert.Equal(t, 1, env.Data.FileCount)
	require.Len(t, env.Data.FileList, 1)
	assert.Equal(t, FileStatus{
		FileURI:              "fileUri",
		StringCount:          2,
		WordCount:            3,
		ApprovedStringCount:  4,
		CompletedStringCount: 5,
		LastUploaded:         "lastDate",
		FileType:             "JAVA_PROPERTIES",
		CallbackURL:          "callbackUrl",
	}, env.Data.FileList[0])
	assert.True(t, env.Success())
}

func TestDecodeEnvelope_NullData(t *testing.T) {
	env, err := DecodeEnvelope[EmptyResponse]([]byte(emptyBody))
	require.NoError(t, err)
	assert.Equal(t, CodeSuccess, env.Code)
	assert.Nil(t, env.Data)
}

func TestDecodeEnvelope_Upload(t *testing.T) {
	env, err := DecodeEnvelope[UploadFileData]([]byte(uploadBody))
	require.NoError(t, err)
	require.NotNil(t, env.Data)
	assert.Equal(t, UploadFileData{StringCount: 1, WordCount: 2, OverWritten: true}, *env.Data)
}

func TestDecodeEnvelope_LastModified(t *testing.T) {
	body := `{"response":{"data": {"items": [{"locale": "en-US", "lastModified": "2013-03-04T19:27:51"}]}, "code":"SUCCESS", "messages":[]}}`

	env, err := DecodeEnvelope[FileLastModified]([]byte(body))
	require.NoError(t, err)
	require.Len(t, env.Data.Items, 1)
	assert.Equal(t, "en-US", env.Data.Items[0].Locale)
	assert.Equal(t, time.Date(2013, 3, 4, 19, 27, 51, 0, time.UTC), env.Data.Items[0].LastModified.Time)
}

func TestDecodeEnvelope_FailureKeepsMessages(t *testing.T) {
	env, err := DecodeEnvelope[FileList]([]byte(invalidBody))
	require.NoError(t, err)
	assert.False(t, env.Success())
	assert.Nil(t, env.Data)
	assert.Equal(t, []string{"apiKey parameter is required", "apiVersion parameter is required"}, env.Messages)
	assert.Equal(t, CodeValidationError, env.Code)
}

func TestUnwrap_Errors(t *testing.T) {
	_, err := Unwrap[FileList]([]byte(invalidBody), 400)
	require.Error(t, err)
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, 400, validation.StatusCode)
	assert.Len(t, validation.Messages, 2)

	_, err = Unwrap[FileList]([]byte(unknownBody), 500)
	require.Error(t, err)
	assert.False(t, IsValidationError(err))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, ResponseCode("UNKNOWN_STATUS"), apiErr.Code)
	assert.Equal(t, []string{"apiKey parameter is required", "apiVersion parameter is required"}, apiErr.Messages)
}

func TestDecodeEnvelope_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "<html>bad gateway</html>"},
		{name: "no envelope", body: `{"data":{}}`},
		{name: "numeric code", body: `{"response":{"code":1}}`},
		{name: "wrong data shape", body: `{"response":{"code":"SUCCESS","data":{"fileCount":"one"}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeEnvelope[FileList]([]byte(tt.body))
			require.Error(t, err)

			var malformed *MalformedEnvelopeError
			assert.True(t, errors.As(err, &malformed))

			var apiErr *APIError
			assert.False(t, errors.As(err, &apiErr), "malformed bodies must not become API errors")
		})
	}
}

func TestSniffCode(t *testing.T) {
	code, ok := SniffCode([]byte(unknownBody))
	require.True(t, ok)
	assert.Equal(t, ResponseCode("UNKNOWN_STATUS"), code)

	_, ok = SniffCode([]byte(`[]`))
	assert.False(t, ok)
}
