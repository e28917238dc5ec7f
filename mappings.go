package client

import (
	"encoding/json"
	"strconv"
)

// ReportCategory identifies the kind of cleanliness issue reported. The API
// serves categories both as numeric codes and as names, so the type decodes
// either shape.
type ReportCategory string

const (
	CategoryOverflowingBin   ReportCategory = "OverflowingBin"
	CategoryStreetLitter     ReportCategory = "StreetLitter"
	CategoryIllegalDump      ReportCategory = "IllegalDump"
	CategorySnowIce          ReportCategory = "SnowIce"
	CategoryDamagedContainer ReportCategory = "DamagedContainer"
	CategoryMissedCollection ReportCategory = "MissedCollection"
	CategoryWaterPollution   ReportCategory = "WaterPollution"
	CategoryOther            ReportCategory = "Other"
)

var categoryCodes = map[int]ReportCategory{
	0:  CategoryOverflowingBin,
	1:  CategoryStreetLitter,
	2:  CategoryIllegalDump,
	3:  CategorySnowIce,
	4:  CategoryDamagedContainer,
	5:  CategoryMissedCollection,
	6:  CategoryWaterPollution,
	99: CategoryOther,
}

var categoryLabels = map[ReportCategory]string{
	CategoryOverflowingBin:   "Overflowing bin",
	CategoryStreetLitter:     "Street litter",
	CategoryIllegalDump:      "Illegal dump",
	CategorySnowIce:          "Uncleared snow or ice",
	CategoryDamagedContainer: "Damaged container",
	CategoryMissedCollection: "Missed collection",
	CategoryWaterPollution:   "Water pollution",
	CategoryOther:            "Other",
}

func (c *ReportCategory) UnmarshalJSON(data []byte) error {
	var code int
	if err := json.Unmarshal(data, &code); err == nil {
		if category, ok := categoryCodes[code]; ok {
			*c = category
		} else {
			*c = ReportCategory(strconv.Itoa(code))
		}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = ReportCategory(raw)
	return nil
}

// Label returns a display string, falling back to the raw value for
// categories this client does not know about.
func (c ReportCategory) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	if c != "" {
		return string(c)
	}
	return "Category"
}

// ReportStatus tracks a report through the operator triage flow. Decodes
// numeric codes and names, like ReportCategory.
type ReportStatus string

const (
	StatusNew         ReportStatus = "New"
	StatusInProgress  ReportStatus = "InProgress"
	StatusCompleted   ReportStatus = "Completed"
	StatusRejected    ReportStatus = "Rejected"
	StatusUnderReview ReportStatus = "UnderReview"
	StatusClosed      ReportStatus = "Closed"
)

var statusCodes = map[int]ReportStatus{
	0: StatusNew,
	1: StatusInProgress,
	2: StatusCompleted,
	3: StatusRejected,
	4: StatusUnderReview,
	5: StatusClosed,
}

var statusLabels = map[ReportStatus]string{
	StatusNew:         "New",
	StatusInProgress:  "In progress",
	StatusCompleted:   "Completed",
	StatusRejected:    "Rejected",
	StatusUnderReview: "Under review",
	StatusClosed:      "Closed",
}

func (s *ReportStatus) UnmarshalJSON(data []byte) error {
	var code int
	if err := json.Unmarshal(data, &code); err == nil {
		if status, ok := statusCodes[code]; ok {
			*s = status
		} else {
			*s = ReportStatus(strconv.Itoa(code))
		}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = ReportStatus(raw)
	return nil
}

func (s ReportStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	if s != "" {
		return string(s)
	}
	return "Status"
}

// AllReportStatuses returns the statuses in triage order.
func AllReportStatuses() []ReportStatus {
	return []ReportStatus{
		StatusNew,
		StatusInProgress,
		StatusCompleted,
		StatusRejected,
		StatusUnderReview,
		StatusClosed,
	}
}
