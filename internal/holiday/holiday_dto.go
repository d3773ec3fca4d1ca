package holiday

type CreateHolidayRequest struct {
	HolidayDate string `json:"holiday_date" binding:"required,datetime=2006-01-02"`
	Name        string `json:"name" binding:"required"`
	CountryCode string `json:"country_code" binding:"omitempty,len=2"`
}

type ImportHolidaysRequest struct {
	Holidays []CreateHolidayRequest `json:"holidays" binding:"required,min=1,dive"`
}

type HolidayResponse struct {
	HolidayDate string `json:"holiday_date"`
	Name        string `json:"name"`
	CountryCode string `json:"country_code"`
}
