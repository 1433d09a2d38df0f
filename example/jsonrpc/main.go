package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/mnehpets/jrpc/codec"
	"github.com/mnehpets/jrpc/jsonrpc"
)

func main() {
	req, err := jsonrpc.BuildRequest(1, "math.add", []any{2, 3})
	if err != nil {
		log.Fatal(err)
	}
	show(req)

	// A server that cannot parse the params answers with the standard
	// template bound to the request id.
	tmpl, err := jsonrpc.GenerateErrorPacket(jsonrpc.CodeInvalidParams)
	if err != nil {
		log.Fatal(err)
	}
	resp, err := jsonrpc.WithID(tmpl, 1)
	if err != nil {
		log.Fatal(err)
	}
	show(resp)

	// Reserved methods and codes are refused at construction time.
	_, err = jsonrpc.BuildRequest(2, "rpc.discover", nil)
	fmt.Println("rpc.discover:", errors.Is(err, jsonrpc.ErrReservedMethod))
	_, err = jsonrpc.BuildError(2, -32000, "Server error", nil)
	fmt.Println("-32000:", errors.Is(err, jsonrpc.ErrReservedCode))

	// Packets received from elsewhere are checked, not built.
	in, err := codec.DecodeJSON([]byte(`{"jsonrpc":"2.0","id":[1],"method":"rpc.ping","params":"x"}`))
	if err != nil {
		log.Fatal(err)
	}
	if err := jsonrpc.Validate(in, jsonrpc.KindRequest); err != nil {
		fmt.Println(err)
	}
}

func show(p jsonrpc.Packet) {
	b, err := codec.Encode(codec.MediaTypeJSON, p)
	if err != nil {
		log.Fatal(err)
	}
	kind, _ := jsonrpc.Classify(p)
	fmt.Printf("%s: %s\n", kind, b)
}
