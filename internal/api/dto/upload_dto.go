package dto

// UploadFromURLReq 从外部 URL 抓取并转存
type UploadFromURLReq struct {
	SourceURL string `json:"sourceUrl" binding:"required,url"`
	Filename  string `json:"filename"`
}

// DeleteUploadReq 按对象路径删除存储对象
type DeleteUploadReq struct {
	Path string `json:"path" binding:"required"`
}
