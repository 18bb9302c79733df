package server

type checkReq struct {
	Key string `json:"key"`
}

type checkRes struct {
	Allowed      bool  `json:"allowed"`
	RetryAfterMs int64 `json:"retry_after_ms"`
}
