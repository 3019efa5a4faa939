// Package provkit assembles provenance graph documents for bioinformatics
// analyses: which samples, files, programs, and executions produced which
// results, under which user and environment.
//
// The assembler walks a fully populated domain model (model.Project) and
// emits a prov.Document: five document-global namespaces, a project
// entity, an environment entity and user agent per registered
// (user, environment) pair, one bundle per sample holding the sample's
// entity plus its file entities and program activities, and typed
// relations between them.
//
// # Assembling a document
//
//	project := model.NewProject("demo")
//	sample := model.NewSample("S1")
//	sample.AddFile(model.NewFile("reads", "/x/reads.fq", true))
//	project.AddSample(sample)
//
//	doc, err := provkit.Assemble(ctx, project)
//	if err != nil {
//	    return err
//	}
//	for _, bundle := range doc.Bundles() {
//	    fmt.Println(bundle.ID(), len(bundle.Nodes()))
//	}
//
// Assembly is deterministic: the same project always produces the same
// namespace prefixes, node identifiers, and relation lists. It is also
// all-or-nothing: on the first component error the assembly aborts and no
// document is returned.
//
// # Options
//
// Functional options configure one assembly:
//
//	doc, err := provkit.Assemble(ctx, project,
//	    provkit.WithLogger(logger),
//	    provkit.WithTracer(tracer),
//	    provkit.WithRunAssociations(),
//	)
//
// WithRunAssociations and WithProjectAttribution enable the optional
// wiring pass connecting program activities and the project entity to the
// user agents registered on the project. WithoutAttributes builds a
// structure-only document.
//
// # Concurrency
//
// One Assembler builds one document and is not safe for concurrent use.
// Independent assemblies share no state and may run in parallel, one per
// project.
//
// # Errors
//
// Failures are returned as *Error wrapping the component sentinel, so both
// layers are matchable:
//
//	_, err := provkit.Assemble(ctx, project)
//	if errors.Is(err, model.ErrEmptyRunHistory) {
//	    // a program was registered without runs
//	}
//
// # Subpackages
//
//   - model: the domain model the assembler consumes
//   - prov: the graph document produced
//   - attr: the closed attribute value variant
//   - config: file-based assembly configuration
//   - provjson: lossless JSON export of finished documents
package provkit
