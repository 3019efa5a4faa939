package provkit

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/provkit/provkit/model"
	"github.com/provkit/provkit/prov"
)

// State is the assembly lifecycle phase. Transitions are strictly
// sequential and one-shot; assembly cannot be paused or resumed, and a
// failed assembly leaves no usable document.
type State string

const (
	// StateInit is the state of a fresh assembler.
	StateInit State = "init"

	// StateGlobalNamespacesOpened follows opening the five global
	// namespaces and creating the project entity.
	StateGlobalNamespacesOpened State = "global_namespaces_opened"

	// StateEnvironmentsRegistered follows creating an environment entity
	// and a user agent for every (user, environment) pair.
	StateEnvironmentsRegistered State = "environments_registered"

	// StateSamplesBundled follows building one bundle per sample with its
	// file entities and program activities.
	StateSamplesBundled State = "samples_bundled"

	// StateRelationsWired follows wiring derivation edges and any
	// configured association/attribution edges.
	StateRelationsWired State = "relations_wired"

	// StateDone is the terminal state; the document is sealed.
	StateDone State = "done"
)

// Assembler builds one provenance document from one project snapshot. It
// owns a fresh document, namespace tables, and node side table, so
// independent assemblers may run concurrently; a single Assembler is
// single-use and not safe for concurrent calls.
type Assembler struct {
	cfg     assemblerConfig
	state   State
	doc     *prov.Document
	nodes   *nodeTable
	metrics *assemblyMetrics

	nsProject    *prov.Namespace
	nsSamples    *prov.Namespace
	nsActivities *prov.Namespace
	nsEnvs       *prov.Namespace
	nsUsers      *prov.Namespace

	bundles    map[string]*prov.Bundle
	userAgents map[string]*prov.Node
	runUsers   map[string]string
}

// NewAssembler creates an assembler with the given options.
func NewAssembler(opts ...Option) *Assembler {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	a := &Assembler{
		cfg:        cfg,
		state:      StateInit,
		doc:        prov.NewDocument(),
		nodes:      newNodeTable(),
		bundles:    make(map[string]*prov.Bundle),
		userAgents: make(map[string]*prov.Node),
		runUsers:   make(map[string]string),
	}

	if cfg.meter != nil {
		m, err := newAssemblyMetrics(cfg.meter)
		if err != nil {
			cfg.logger.Warn("failed to create assembly metrics", slog.String("error", err.Error()))
		} else {
			a.metrics = m
		}
	}

	return a
}

// Assemble builds a provenance document for the project using a fresh
// assembler. It is the convenience entry point for callers that do not
// need to hold on to the Assembler.
func Assemble(ctx context.Context, project *model.Project, opts ...Option) (*prov.Document, error) {
	return NewAssembler(opts...).Assemble(ctx, project)
}

// State returns the assembler's current lifecycle state.
func (a *Assembler) State() State {
	return a.state
}

// Assemble walks the project and produces a finished, sealed document.
// On any component error the assembly aborts in place and returns no
// document; assembly is deterministic, so retrying with the same input
// reproduces the same failure. A consumed assembler cannot be reused.
func (a *Assembler) Assemble(ctx context.Context, project *model.Project) (*prov.Document, error) {
	if a.state != StateInit {
		return nil, &Error{Op: "Assembler.Assemble", Kind: KindState, Err: ErrAssemblerConsumed}
	}

	start := time.Now()
	var span trace.Span
	if a.cfg.tracer != nil {
		ctx, span = a.cfg.tracer.Start(ctx, "provkit.assemble")
		defer span.End()
	}

	doc, err := a.assemble(project)
	duration := time.Since(start)

	tag := ""
	if project != nil {
		tag = project.Tag
	}
	a.recordAssembly(ctx, span, tag, countDocument(a.doc), duration, err)

	if err != nil {
		a.cfg.logger.Error("assembly failed",
			slog.String("project", tag),
			slog.String("state", string(a.state)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	counts := countDocument(doc)
	a.cfg.logger.Info("assembly complete",
		slog.String("project", tag),
		slog.Int("bundles", counts.bundles),
		slog.Int("nodes", counts.nodes),
		slog.Int("relations", counts.relations),
		slog.Duration("duration", duration),
	)
	return doc, nil
}

func (a *Assembler) assemble(project *model.Project) (*prov.Document, error) {
	if err := project.Validate(); err != nil {
		return nil, wrapErr("Assembler.ValidateProject", err)
	}

	if err := a.openGlobalNamespaces(project); err != nil {
		return nil, wrapErr("Assembler.OpenNamespaces", err)
	}
	a.state = StateGlobalNamespacesOpened

	if err := a.registerEnvironmentsAndUsers(project); err != nil {
		return nil, wrapErr("Assembler.RegisterEnvironments", err)
	}
	a.state = StateEnvironmentsRegistered

	if err := a.buildSampleBundles(project); err != nil {
		return nil, wrapErr("Assembler.BuildBundles", err)
	}
	a.state = StateSamplesBundled

	if err := a.wireRelations(project); err != nil {
		return nil, wrapErr("Assembler.WireRelations", err)
	}
	a.state = StateRelationsWired

	a.doc.Seal()
	a.state = StateDone
	return a.doc, nil
}

// openGlobalNamespaces opens the five document-global namespaces and
// creates the project entity.
func (a *Assembler) openGlobalNamespaces(project *model.Project) error {
	var err error
	if a.nsProject, err = a.doc.AddNamespace("project", project.Tag); err != nil {
		return err
	}
	if a.nsSamples, err = a.doc.AddNamespace("samples",
		fmt.Sprintf("Samples associated with Project %q", project.Tag)); err != nil {
		return err
	}
	if a.nsActivities, err = a.doc.AddNamespace("activities",
		fmt.Sprintf("Activities associated with Project %q", project.Tag)); err != nil {
		return err
	}
	if a.nsEnvs, err = a.doc.AddNamespace("envs",
		fmt.Sprintf("Environments associated with Project %q", project.Tag)); err != nil {
		return err
	}
	if a.nsUsers, err = a.doc.AddNamespace("users",
		fmt.Sprintf("Users associated with Project %q", project.Tag)); err != nil {
		return err
	}

	var attrs []prov.Attribute
	if a.cfg.withAttributes {
		exclude := append([]string{"samples", "files", "envs"}, a.cfg.denylist...)
		if attrs, err = prov.EncodeAttributes(a.nsProject, project.AttributeMap(), exclude...); err != nil {
			return err
		}
	}

	entity, err := a.doc.Entity(a.nsProject, project.Tag, attrs)
	if err != nil {
		return err
	}
	a.nodes.put(projectKey(project.Tag), entity)

	a.cfg.logger.Debug("opened global namespaces", slog.String("project", project.Tag))
	return nil
}

// registerEnvironmentsAndUsers creates an environment entity and a user
// agent for every (user, environment) pair on the project. Users appearing
// in several pairs get a single agent; identical environment snapshots
// registered for different users share one entity.
func (a *Assembler) registerEnvironmentsAndUsers(project *model.Project) error {
	for _, key := range project.EnvKeys() {
		env := project.Envs[key]

		if existing, ok := a.doc.FindNode(prov.QualifiedID(a.nsEnvs, env.Signature)); ok {
			a.nodes.put(environmentKey(key.User, env.Signature), existing)
		} else {
			var attrs []prov.Attribute
			if a.cfg.withAttributes {
				envNS, err := a.ensureGlobalNamespace(env.Signature,
					fmt.Sprintf("Environment of user %q on host %q", env.User, env.Hostname))
				if err != nil {
					return err
				}
				if attrs, err = prov.EncodeAttributes(envNS, env.AttributeMap()); err != nil {
					return err
				}
			}
			entity, err := a.doc.Entity(a.nsEnvs, env.Signature, attrs)
			if err != nil {
				return err
			}
			a.nodes.put(environmentKey(key.User, env.Signature), entity)
		}

		if _, seen := a.userAgents[key.User]; !seen {
			agent, err := a.doc.Agent(a.nsUsers, key.User)
			if err != nil {
				return err
			}
			a.userAgents[key.User] = agent
			a.nodes.put(userAgentKey(key.User), agent)
		}
	}

	a.cfg.logger.Debug("registered environments and users",
		slog.Int("environments", len(project.Envs)),
		slog.Int("users", len(a.userAgents)),
	)
	return nil
}

// buildSampleBundles creates one bundle per sample: the sample entity, an
// entity per file, and an activity per program timed by its last run.
func (a *Assembler) buildSampleBundles(project *model.Project) error {
	for _, name := range project.SampleNames() {
		sample := project.Samples[name]

		bundle, err := a.doc.Bundle(a.nsSamples, name)
		if err != nil {
			return err
		}
		if err := bundle.SetDefaultNamespace(name); err != nil {
			return err
		}
		a.bundles[name] = bundle

		entity, err := bundle.Entity(nil, name, nil)
		if err != nil {
			return err
		}
		a.nodes.put(sampleKey(name), entity)

		if err := a.buildFileEntities(bundle, sample); err != nil {
			return err
		}
		if err := a.buildProgramActivities(bundle, sample); err != nil {
			return err
		}

		a.cfg.logger.Debug("built sample bundle",
			slog.String("sample", name),
			slog.Int("files", len(sample.Files)),
			slog.Int("programs", len(sample.Programs)),
		)
	}
	return nil
}

func (a *Assembler) buildFileEntities(bundle *prov.Bundle, sample *model.Sample) error {
	filesNS, err := bundle.AddNamespace(sample.Name+".files",
		fmt.Sprintf("Files associated with Sample %q", sample.Name))
	if err != nil {
		return err
	}

	for _, key := range sample.FileKeys() {
		file := sample.Files[key]

		var attrs []prov.Attribute
		if a.cfg.withAttributes {
			fileNS, err := a.ensureBundleNamespace(bundle, file.Name, file.Path)
			if err != nil {
				return err
			}
			if attrs, err = prov.EncodeAttributes(fileNS, file.AttributeMap()); err != nil {
				return err
			}
		}

		entity, err := bundle.Entity(filesNS, file.Name, attrs)
		if err != nil {
			return err
		}
		a.nodes.put(fileNodeKey(sample.Name, file.Name), entity)
	}
	return nil
}

func (a *Assembler) buildProgramActivities(bundle *prov.Bundle, sample *model.Sample) error {
	programsNS, err := bundle.AddNamespace(sample.Name+".programs",
		fmt.Sprintf("Programs associated with Sample %q", sample.Name))
	if err != nil {
		return err
	}

	for _, key := range sample.ProgramKeys() {
		program := sample.Programs[key]

		lastRun, err := program.LastRun()
		if err != nil {
			return err
		}

		if _, err := a.ensureBundleNamespace(bundle, program.Name, program.Name); err != nil {
			return err
		}

		activity, err := bundle.Activity(programsNS, program.Name, lastRun.StartTime, lastRun.EndTime, nil)
		if err != nil {
			return err
		}
		tableKey := programNodeKey(sample.Name, program.Name)
		a.nodes.put(tableKey, activity)
		a.runUsers[tableKey] = lastRun.User
	}
	return nil
}

// wireRelations adds the derivation edge from every file entity to its
// sample entity, plus the optional association and attribution edges.
func (a *Assembler) wireRelations(project *model.Project) error {
	projectEntity, ok := a.nodes.get(projectKey(project.Tag))
	if !ok {
		return fmt.Errorf("project entity %q: %w", project.Tag, prov.ErrDanglingReference)
	}

	for _, name := range project.SampleNames() {
		sample := project.Samples[name]
		bundle := a.bundles[name]

		sampleEntity, ok := a.nodes.get(sampleKey(name))
		if !ok {
			return fmt.Errorf("sample entity %q: %w", name, prov.ErrDanglingReference)
		}

		for _, key := range sample.FileKeys() {
			file := sample.Files[key]
			fileEntity, ok := a.nodes.get(fileNodeKey(name, file.Name))
			if !ok {
				return fmt.Errorf("file entity %q/%q: %w", name, file.Name, prov.ErrDanglingReference)
			}
			if err := bundle.WasDerivedFrom(fileEntity.ID, sampleEntity.ID); err != nil {
				return err
			}
		}

		if a.cfg.runAssociations {
			if err := a.wireRunAssociations(sample); err != nil {
				return err
			}
		}
	}

	if a.cfg.projectAttribution {
		for _, user := range a.sortedUsers() {
			agent := a.userAgents[user]
			if err := a.doc.WasAttributedTo(projectEntity.ID, agent.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

func (a *Assembler) sortedUsers() []string {
	users := make([]string, 0, len(a.userAgents))
	for user := range a.userAgents {
		users = append(users, user)
	}
	sort.Strings(users)
	return users
}

// wireRunAssociations links each program activity to the agent of the user
// its last run executed as. The user must have been registered through the
// project's environment map; a missing agent is a dangling reference, not
// a silent skip.
func (a *Assembler) wireRunAssociations(sample *model.Sample) error {
	for _, key := range sample.ProgramKeys() {
		program := sample.Programs[key]
		tableKey := programNodeKey(sample.Name, program.Name)

		activity, ok := a.nodes.get(tableKey)
		if !ok {
			return fmt.Errorf("program activity %q/%q: %w", sample.Name, program.Name, prov.ErrDanglingReference)
		}

		user := a.runUsers[tableKey]
		agent, ok := a.userAgents[user]
		if !ok {
			return fmt.Errorf("no agent for run user %q of program %q: %w",
				user, program.Name, prov.ErrDanglingReference)
		}

		if err := a.doc.WasAssociatedWith(activity.ID, agent.ID); err != nil {
			return err
		}
	}
	return nil
}

// ensureGlobalNamespace opens a global namespace, reusing it when the
// prefix is already registered (identical environments may repeat).
func (a *Assembler) ensureGlobalNamespace(prefix, label string) (*prov.Namespace, error) {
	if ns, ok := a.doc.Namespace(prefix); ok {
		return ns, nil
	}
	return a.doc.AddNamespace(prefix, label)
}

// ensureBundleNamespace opens a bundle-local namespace, reusing it when
// the prefix is already registered. Duplicate domain names are still
// caught: the node created under the reused namespace collides.
func (a *Assembler) ensureBundleNamespace(bundle *prov.Bundle, prefix, label string) (*prov.Namespace, error) {
	if ns, ok := bundle.Namespace(prefix); ok {
		return ns, nil
	}
	return bundle.AddNamespace(prefix, label)
}

// documentCounts aggregates output cardinalities for logging and
// instrumentation.
type documentCounts struct {
	nodes     int
	relations int
	bundles   int
}

func countDocument(doc *prov.Document) documentCounts {
	c := documentCounts{
		nodes:     len(doc.Nodes()),
		relations: len(doc.Relations()),
		bundles:   len(doc.Bundles()),
	}
	for _, b := range doc.Bundles() {
		c.nodes += len(b.Nodes())
		c.relations += len(b.Relations())
	}
	return c
}
