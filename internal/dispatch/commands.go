package dispatch

import "github.com/jeanhaley32/lara/internal/constants"

// Help groups, in display order.
const (
	GroupLifecycle = "Lifecycle"
	GroupAccess    = "Shell & logs"
	GroupTools     = "Tools"
	GroupFrontend  = "Frontend"
	GroupFramework = "Framework"
	GroupTesting   = "Testing"
	GroupInfo      = "Info"
	GroupSetup     = "Setup & cleanup"
)

// Groups lists the help groups in display order.
var Groups = []string{
	GroupLifecycle, GroupAccess, GroupTools, GroupFrontend,
	GroupFramework, GroupTesting, GroupInfo, GroupSetup,
}

const (
	artisan = "{exec} -u {user} {service} php artisan"
	inApp   = "{exec} -u {user} {service}"
)

// DefaultCommands returns the built-in shortcut table. services gets one logs-<service> entry each.
func DefaultCommands(services []string) []Command {
	cmds := []Command{
		{Name: "help", Summary: "List all commands", Group: GroupInfo, Builtin: runHelp},

		{Name: "up", Summary: "Start all services in the background", Group: GroupLifecycle, Templates: []string{"up -d"}},
		{Name: "down", Summary: "Stop and remove all services", Group: GroupLifecycle, Templates: []string{"down"}},
		{Name: "restart", Summary: "Restart all services", Group: GroupLifecycle, Templates: []string{"restart"}},
		{Name: "stop", Summary: "Stop all services", Group: GroupLifecycle, Templates: []string{"stop"}},
		{Name: "start", Summary: "Start stopped services", Group: GroupLifecycle, Templates: []string{"start"}},
		{Name: "ps", Summary: "List service containers", Group: GroupLifecycle, Templates: []string{"ps"}},
		{Name: "build", Summary: "Build service images", Group: GroupLifecycle, Templates: []string{"build"}},
		{Name: "rebuild", Summary: "Build service images without cache", Group: GroupLifecycle, Templates: []string{"build --no-cache"}},

		{Name: "shell", Summary: "Open a shell in the app service", Group: GroupAccess, Templates: []string{inApp + " bash"}},
		{Name: "root", Summary: "Open a root shell in the app service", Group: GroupAccess, Templates: []string{"{exec} -u " + constants.RootUser + " {service} bash"}},
		{Name: "logs", Summary: "Follow logs of all services", Group: GroupAccess, Templates: []string{"logs -f"}},
	}

	seen := make(map[string]bool)
	for _, svc := range services {
		if seen[svc] {
			continue
		}
		seen[svc] = true
		cmds = append(cmds, Command{
			Name:      "logs-" + svc,
			Summary:   "Follow logs of " + svc,
			Group:     GroupAccess,
			Templates: []string{"logs -f " + svc},
		})
	}

	cmds = append(cmds,
		Command{Name: "artisan", Summary: "Run an artisan command", Group: GroupTools, Param: "cmd", Templates: []string{artisan + " {cmd}"}},
		Command{Name: "composer", Summary: "Run a composer command", Group: GroupTools, Param: "cmd", Templates: []string{inApp + " composer {cmd}"}},
		Command{Name: "npm", Summary: "Run an npm command", Group: GroupTools, Param: "cmd", Templates: []string{inApp + " npm {cmd}"}},
		Command{Name: "serve", Summary: "Start the development server in the background", Group: GroupTools, Mode: Detached, StopWith: "serve-stop",
			Templates: []string{"exec -d -u {user} {service} php artisan serve --host=0.0.0.0 --port={port}"}},
		Command{Name: "serve-stop", Summary: "Stop the development server", Group: GroupTools, Mode: BestEffort,
			Templates: []string{`exec -T -u {user} {service} pkill -f "artisan serve"`}},

		Command{Name: "npm-dev", Summary: "Start the bundler dev server in the background", Group: GroupFrontend, Mode: Detached, StopWith: "npm-stop",
			Templates: []string{"exec -d -u {user} {service} npm run dev"}},
		Command{Name: "npm-stop", Summary: "Stop the bundler dev server", Group: GroupFrontend, Mode: BestEffort,
			Templates: []string{"exec -T -u {user} {service} pkill -f vite"}},
		Command{Name: "npm-watch", Summary: "Rebuild assets on change", Group: GroupFrontend, Templates: []string{inApp + " npm run watch"}},
		Command{Name: "npm-build", Summary: "Build assets for production", Group: GroupFrontend, Templates: []string{inApp + " npm run build"}},

		Command{Name: "migrate", Summary: "Run database migrations", Group: GroupFramework, Templates: []string{artisan + " migrate"}},
		Command{Name: "seed", Summary: "Seed the database", Group: GroupFramework, Templates: []string{artisan + " db:seed"}},
		Command{Name: "fresh", Summary: "Drop all tables, migrate and seed", Group: GroupFramework, Templates: []string{artisan + " migrate:fresh --seed"}},
		Command{Name: "tinker", Summary: "Open a tinker REPL", Group: GroupFramework, Templates: []string{artisan + " tinker"}},
		Command{Name: "queue", Summary: "Run the queue worker", Group: GroupFramework, Templates: []string{artisan + " queue:work"}},
		Command{Name: "cache-clear", Summary: "Clear application, config, route and view caches", Group: GroupFramework, Templates: []string{
			artisan + " cache:clear",
			artisan + " config:clear",
			artisan + " route:clear",
			artisan + " view:clear",
		}},

		Command{Name: "test", Summary: "Run the test suite", Group: GroupTesting, Templates: []string{artisan + " test"}},
		Command{Name: "test-parallel", Summary: "Run the test suite in parallel", Group: GroupTesting, Templates: []string{artisan + " test --parallel"}},
		Command{Name: "pest", Summary: "Run Pest", Group: GroupTesting, Templates: []string{inApp + " ./vendor/bin/pest"}},

		Command{Name: "status", Summary: "Show project configuration", Group: GroupInfo, Builtin: runStatus},
		Command{Name: "ports", Summary: "Show published ports", Group: GroupInfo, Builtin: runPorts},

		Command{Name: "clean", Summary: "Remove containers, networks and volumes", Group: GroupSetup, Templates: []string{"down -v --remove-orphans"}},
		Command{Name: "clean-orphans", Summary: "Recreate services, removing orphan containers", Group: GroupSetup, Templates: []string{"up -d --remove-orphans"}},
		Command{Name: "bootstrap", Summary: "Create the env file from its template if missing", Group: GroupSetup, Builtin: runBootstrap},
		Command{Name: "setup", Summary: "Bootstrap, build and start everything", Group: GroupSetup, Steps: []string{"bootstrap", "build", "up"}},
	)

	return cmds
}

// DefaultRegistry returns a registry holding DefaultCommands.
func DefaultRegistry(services []string) *Registry {
	r := NewRegistry()
	for _, c := range DefaultCommands(services) {
		r.Register(c)
	}
	return r
}
