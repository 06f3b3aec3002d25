package server

import (
	"errors"
	"net/http"

	"github.com/hyperifyio/placepin/internal/apperr"
	"github.com/hyperifyio/placepin/internal/candidate"
	"github.com/hyperifyio/placepin/internal/extract"
	"github.com/hyperifyio/placepin/internal/fetch"
	"github.com/hyperifyio/placepin/internal/geocode"
	"github.com/hyperifyio/placepin/internal/locate"
	"github.com/hyperifyio/placepin/internal/ocr"
	"github.com/hyperifyio/placepin/internal/scrape"
)

// NewSanitizer returns the client error table for the API.
func NewSanitizer() *apperr.Sanitizer {
	return &apperr.Sanitizer{Rules: []apperr.Rule{
		{Target: ErrBadRequest, Status: http.StatusBadRequest, Message: "요청 형식이 올바르지 않습니다."},
		{Target: ErrMissingURL, Status: http.StatusBadRequest, Message: "URL이 필요합니다."},
		{Target: ErrMissingText, Status: http.StatusBadRequest, Message: "텍스트 또는 URL이 필요합니다."},
		{Target: ErrAmbiguousInput, Status: http.StatusBadRequest, Message: "텍스트와 URL 중 하나만 입력해주세요."},
		{Target: ErrMissingQuery, Status: http.StatusBadRequest, Message: "검색어가 필요합니다."},
		{Target: ErrNoImage, Status: http.StatusBadRequest, Message: "이미지 파일이 없습니다."},
		{Target: ErrTextTooLarge, Status: http.StatusRequestEntityTooLarge, Message: "텍스트가 너무 깁니다."},
		{Target: ErrURLTooLong, Status: http.StatusBadRequest, Message: "URL이 너무 깁니다."},
		{Target: ErrQueryTooLong, Status: http.StatusBadRequest, Message: "검색어가 너무 깁니다."},
		{Target: ErrUploadTooLarge, Status: http.StatusRequestEntityTooLarge, Message: "이미지 파일이 너무 큽니다."},
		{Target: candidate.ErrUnknownMode, Status: http.StatusBadRequest, Message: "지원하지 않는 추출 모드입니다."},

		// Geocoder and OCR failures can wrap a *fetch.StatusError and must
		// match before the post fetch rule.
		{Target: geocode.ErrUnauthorized, Status: http.StatusUnauthorized, Message: "네이버 API 인증 실패 - Client ID/Secret을 확인해주세요."},
		{Target: geocode.ErrForbidden, Status: http.StatusForbidden, Message: "네이버 API 권한 없음 - API 사용 권한을 확인해주세요."},
		{Target: geocode.ErrRateLimited, Status: http.StatusTooManyRequests, Message: "네이버 API 요청 제한 - 잠시 후 다시 시도해주세요."},
		{Target: geocode.ErrLookupFailed, Status: http.StatusBadGateway, Message: "장소 검색 중 오류가 발생했습니다. 잠시 후 다시 시도해주세요."},
		{Target: ocr.ErrRequestFailed, Status: http.StatusBadGateway, Message: "OCR 처리 중 오류 발생"},

		{Target: scrape.ErrInvalidURL, Status: http.StatusBadRequest, Message: "올바른 URL을 입력해주세요."},
		{Target: scrape.ErrPrivateHost, Status: http.StatusBadRequest, Message: "올바른 URL을 입력해주세요."},
		{Target: extract.ErrNoPostContent, Status: http.StatusNotFound, Message: "포스트 내용을 찾을 수 없습니다."},
		{Match: isFetchStatus, Status: http.StatusBadGateway, Message: "포스트 내용을 가져오는데 실패했습니다. 링크를 확인해주세요."},

		{Target: locate.ErrNoText, Status: http.StatusUnprocessableEntity, Message: "이미지에서 텍스트를 추출할 수 없습니다."},
		{Target: ocr.ErrEmptyImage, Status: http.StatusBadRequest, Message: "이미지 파일이 없습니다."},
		{Target: ocr.ErrImageTooLarge, Status: http.StatusRequestEntityTooLarge, Message: "이미지를 1MB 이하로 압축할 수 없습니다."},
		{Target: ocr.ErrTesseractUnavailable, Status: http.StatusNotImplemented, Message: "OCR 엔진을 사용할 수 없습니다."},
		{Match: isOCRProcessing, Status: http.StatusBadGateway, Message: "OCR 처리 중 오류 발생"},
	}}
}

func isFetchStatus(err error) bool {
	var se *fetch.StatusError
	return errors.As(err, &se)
}

func isOCRProcessing(err error) bool {
	var pe *ocr.ProcessingError
	return errors.As(err, &pe)
}
