// Package model defines the domain model the provenance assembler walks:
// a Project owning Samples, which own Files and Programs with their Runs,
// plus the Environments and users a project was processed under.
//
// The assembler treats the model as a read-only, fully populated snapshot.
// Constructing the model — from CSV ingestion, workflow runners, or stored
// records — is the responsibility of external collaborators; this package
// only provides the types, constructors, and the validation the assembler
// relies on.
//
// A minimal project:
//
//	project := model.NewProject("demo")
//	sample := model.NewSample("S1")
//	sample.AddFile(model.NewFile("reads", "/x/reads.fq", true))
//	project.AddSample(sample)
//
// Environments are captured from the running process and keyed by a stable
// signature:
//
//	env, err := model.CaptureEnvironment()
//	if err == nil {
//	    project.AddEnvironment(env.User, env)
//	}
package model
