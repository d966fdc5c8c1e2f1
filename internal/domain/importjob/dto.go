package importjob

type JobStatusResponse struct {
	ID         string  `json:"id"`
	FileName   string  `json:"file_name"`
	Status     string  `json:"status"`
	Processed  int     `json:"processed_count"`
	Total      int     `json:"total_count"`
	Percentage int     `json:"percentage"`
	ErrorLog   *string `json:"error_log,omitempty"`
}

// ToStatusResponse derives the polling DTO. Percentage is processed/total*100
// rounded down, 0 when total is 0, and forced to 100 once the job completes.
func ToStatusResponse(j Job) JobStatusResponse {
	pct := 0
	if j.TotalRows > 0 {
		pct = j.ProcessedRows * 100 / j.TotalRows
	}
	if j.Status == StatusCompleted {
		pct = 100
	}
	return JobStatusResponse{
		ID:         j.ID,
		FileName:   j.FileName,
		Status:     string(j.Status),
		Processed:  j.ProcessedRows,
		Total:      j.TotalRows,
		Percentage: pct,
		ErrorLog:   j.ErrorLog,
	}
}
