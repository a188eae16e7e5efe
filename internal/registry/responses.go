package registry

type GetCrawlTargetsResponse struct {
	URLs    []string `json:"urls"`
	Message string   `json:"message"`
}

type GetAllMachinesStatusResponse struct {
	Machines []MachineStatus `json:"machines"`
}
