package pipeline

// EncodeRequest is the JSON input of the encode path. A Result doubles as
// the decode request.
type EncodeRequest struct {
	Text string `json:"text"`
	Key  string `json:"key"`
}

// DecodeResponse is the JSON output of the decode path.
type DecodeResponse struct {
	DecodedText string `json:"decoded_text"`
}

// HandleEncode encodes req.Text with req.Key.
func (c *Codec) HandleEncode(req *EncodeRequest) (*Result, error) {
	return c.Encode(req.Text, []byte(req.Key))
}

// HandleDecode decodes req. A non-empty key overrides req.Key.
func (c *Codec) HandleDecode(req *Result, key []byte) (*DecodeResponse, error) {
	text, err := c.DecodeResult(req, key)
	if err != nil {
		return nil, err
	}
	return &DecodeResponse{DecodedText: text}, nil
}
