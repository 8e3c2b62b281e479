package uploads

type UploadResponse struct {
	ObjectName string `json:"object_name"`
	URL        string `json:"url"`
	Size       int64  `json:"size"`
}
