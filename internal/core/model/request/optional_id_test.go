package request

import (
	"encoding/json"
	"testing"

	. "github.com/onsi/gomega"
)

func TestOptionalID_UnmarshalJSON(t *testing.T) {
	g := NewWithT(t)

	decode := func(body string) (TodoRequest, error) {
		var req TodoRequest
		err := json.Unmarshal([]byte(body), &req)
		return req, err
	}

	for _, body := range []string{
		`{"name":"a"}`,
		`{"name":"a","categoryId":null}`,
		`{"name":"a","categoryId":0}`,
		`{"name":"a","categoryId":-3}`,
		`{"name":"a","categoryId":""}`,
		`{"name":"a","categoryId":" "}`,
	} {
		req, err := decode(body)

		g.Expect(err).To(BeNil(), body)
		g.Expect(req.CategoryID.Valid()).To(BeFalse(), body)
		g.Expect(req.CategoryID.Ptr()).To(BeNil(), body)
	}

	req, err := decode(`{"name":"a","categoryId":12}`)
	g.Expect(err).To(BeNil())
	g.Expect(*req.CategoryID.Ptr()).To(Equal(int64(12)))

	req, err = decode(`{"name":"a","categoryId":"12"}`)
	g.Expect(err).To(BeNil())
	g.Expect(*req.CategoryID.Ptr()).To(Equal(int64(12)))

	_, err = decode(`{"name":"a","categoryId":"twelve"}`)
	g.Expect(err).To(HaveOccurred())

	_, err = decode(`{"name":"a","categoryId":1.5}`)
	g.Expect(err).To(HaveOccurred())
}

func TestOptionalID_MarshalJSON(t *testing.T) {
	g := NewWithT(t)

	out, _ := json.Marshal(NewOptionalID(0))
	g.Expect(string(out)).To(Equal("null"))

	out, _ = json.Marshal(NewOptionalID(5))
	g.Expect(string(out)).To(Equal("5"))
}
