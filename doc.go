// Package fastjson is a lightweight JSON codec with a byte-position-aware
// parser, zero-copy string extraction, and descriptor-driven mapping between
// JSON text and Go values.
//
// Parsing builds a Value tree whose string data borrows from the input
// buffer whenever the source text needed no escape decoding:
//
//	v, err := fastjson.Parse([]byte(`{"name":"Alice","age":30}`))
//	if err != nil {
//		log.Fatal(err)
//	}
//	name, _ := v.Get("name").Str()
//
// Typed mapping is driven by descriptors derived from struct tags, with
// field renaming, skipping, naming policies, and Optional fields as
// pointers:
//
//	type Person struct {
//		Name  string  `fastjson:"name"`
//		Age   uint32  `fastjson:"age"`
//		Email *string `fastjson:"email,omitempty"`
//	}
//
//	var p Person
//	err := fastjson.Unmarshal(data, &p)
//	out, err := fastjson.Marshal(p)
//
// Closed variant sets (enums) are interfaces registered with RegisterEnum.
// Unit variants encode as a bare string; newtype variants as
// {"type":name,"data":payload}; struct variants carry their fields inline
// beside the "type" key.
//
// Errors report the exact byte offset, line and column of a parse failure,
// or the dotted field path of a type-check failure, and are categorized by
// ErrorKind for errors.Is matching.
//
// All operations are pure with respect to shared state: the descriptor
// registry is populated during program initialization and read-only
// afterwards, so independent calls are safe to run concurrently.
package fastjson
