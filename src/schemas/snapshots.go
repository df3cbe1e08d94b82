package schemas

type SnapshotResponse struct {
	Date       string  `json:"date"`
	TotalValue float64 `json:"total_value"`
}

// SnapshotRun summarizes one run of the snapshot job.
type SnapshotRun struct {
	Date     string `json:"date"`
	Users    int    `json:"users"`
	Recorded int    `json:"recorded"`
	Failed   int    `json:"failed"`
}
