package projectreq

type CreateProjectRequest struct {
	EurekaName  string `json:"eureka_name" binding:"required"`
	UploadName  string `json:"upload_name"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdateProjectRequest struct {
	EurekaName  *string `json:"eureka_name"`
	UploadName  *string `json:"upload_name"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
}
