// Package krpcgen generates Rust client bindings from kRPC service
// descriptions.
//
// A schema directory holds JSON documents, each mapping service names to
// their classes, enumerations and procedures. krpcgen reads every document,
// in file name order, and emits one Rust source file containing a module per
// service: a client handle struct, declarations for the service's classes
// and enumerations, and a typed method per procedure that builds the request,
// performs the call and converts the response.
//
// The generated code depends on a small runtime in the consuming crate
// (the client type, Request, ToArgument and the rpc_object!/rpc_enum!
// macros), whose location is configurable.
//
// Basic usage:
//
//	res, err := krpcgen.FromDir("./schemas").ToFile("./src/services.rs")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, w := range res.Warnings {
//	    log.Printf("%s: %s", w.Code, w.Message)
//	}
//
// From a build script, the same run is available as Generate with a Config.
package krpcgen
