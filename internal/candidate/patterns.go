package candidate

import "regexp"

// Building blocks for the address patterns. Go's regexp engine runs in
// linear time, so the nested optional groups below cannot backtrack
// catastrophically; Options.MaxInputRunes bounds the linear cost.
const (
	wordClass = `[가-힣A-Za-z0-9]`

	// Optional leading province or metropolitan city. Bare short names are
	// listed because posts usually write 서울 rather than 서울특별시.
	regionUnit = `(?:(?:` + wordClass + `+(?:특별자치시|특별자치도|특별시|광역시|시|도)` +
		`|서울|부산|대구|인천|광주|대전|울산|세종|경기|강원|충북|충남|전북|전남|경북|경남|제주)\s*)?`

	// One or two city/district/county units, e.g. 수원시 팔달구.
	districtUnit = `(?:` + wordClass + `+(?:구|군|시)\s*){1,2}`

	roadUnit         = `[가-힣A-Za-z0-9\-]+(?:대로|로|길|거리)`
	neighborhoodUnit = wordClass + `+(?:동|읍|면|가)`
	houseNumber      = `\s*\d+(?:-\d+)?`
	trailingUnit     = `(?:[가-힣]|\s*\d+)?`
	buildingUnit     = wordClass + `+(?:빌딩|아파트|타워|센터|몰|플라자|스퀘어|하우스|빌라|맨션)`

	roadPattern     = regionUnit + districtUnit + roadUnit + houseNumber + trailingUnit
	lotPattern      = regionUnit + districtUnit + neighborhoodUnit + houseNumber + trailingUnit
	buildingPattern = roadPattern + `\s*` + buildingUnit
	simplePattern   = regionUnit + districtUnit + neighborhoodUnit + `\s*\d+`
)

var (
	roadRE = regexp.MustCompile(roadPattern)

	// addressPatterns are evaluated independently and their matches pooled.
	addressPatterns = []*regexp.Regexp{
		roadRE,
		regexp.MustCompile(lotPattern),
		regexp.MustCompile(buildingPattern),
		regexp.MustCompile(simplePattern),
	}

	hashtagRE = regexp.MustCompile(`#([\w가-힣]+)`)

	placeRE = regexp.MustCompile(wordClass +
		`+(?:역|대|시청|공원|타워|센터|관|병원|교|마을|시장|공항|터미널|호텔|빌딩|플라자|몰|스퀘어|하우스|맨션)`)
)

// DefaultExcludedPlaces lists place-suffix matches known to be false
// positives: 취향대로 and 한강대로 split into 취향대 and 한강대, and 대호
// shows up inside unrelated compounds.
var DefaultExcludedPlaces = []string{"취향대", "한강대", "대호"}
