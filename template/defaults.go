package template

// Default alias and template bodies.
//
// Every formatting hook here exists so a deployment can override the
// default rendering: redefining an alias of the same name in user
// configuration replaces the definition below (last definition wins).
// The built-in combinators themselves are not overridable.
var defaultAliases = []struct {
	decl   string
	source string
}{
	{
		"description_placeholder",
		`label("description", "(no description set)")`,
	},
	{
		"format_short_id(id)",
		`id.shortest(12)`,
	},
	{
		"format_short_change_id(id)",
		`label("change_id", format_short_id(id))`,
	},
	{
		"format_short_commit_id(id)",
		`label("commit_id", format_short_id(id))`,
	},
	{
		"format_short_signature(signature)",
		`signature.email()`,
	},
	{
		"format_timestamp(timestamp)",
		`timestamp.ago()`,
	},
	{
		"format_time_range(time_range)",
		`format_timestamp(time_range.start()) ++ " - " ++ ` +
			`format_timestamp(time_range.end())`,
	},
	{
		"builtin_log_oneline",
		`label(if(current_working_copy, "working_copy"),
  separate(" ",
    format_short_change_id(change_id),
    label("author", author.username()),
    label("timestamp", format_timestamp(committer.timestamp())),
    label("branches", branches),
    label("tags", tags),
    label("working_copies", working_copies),
    if(git_head, label("git_head", "HEAD@git")),
    format_short_commit_id(commit_id),
    if(conflict, label("conflict", "conflict")),
    label("description",
      coalesce(description.first_line(), description_placeholder))
  ) ++ "\n")`,
	},
	{
		"builtin_log_compact",
		`label(if(current_working_copy, "working_copy"),
  separate(" ",
    format_short_change_id(change_id),
    label("author", format_short_signature(author)),
    label("timestamp", format_timestamp(committer.timestamp())),
    label("branches", branches),
    label("tags", tags),
    label("working_copies", working_copies),
    if(git_head, label("git_head", "HEAD@git")),
    format_short_commit_id(commit_id),
    if(conflict, label("conflict", "conflict"))
  ) ++ "\n"
  ++ indent("  ", label("description",
    coalesce(description.first_line(), description_placeholder)))
  ++ "\n")`,
	},
	{
		"builtin_log_comfortable",
		`builtin_log_compact ++ "\n"`,
	},
	{
		"builtin_log_detailed",
		`concat(
  "Commit ID: " ++ label("commit_id", commit_id) ++ "\n",
  "Change ID: " ++ label("change_id", change_id) ++ "\n",
  label("author", "Author: " ++ author
    ++ " (" ++ format_timestamp(author.timestamp()) ++ ")") ++ "\n",
  label("committer", "Committer: " ++ committer
    ++ " (" ++ format_timestamp(committer.timestamp()) ++ ")") ++ "\n",
  "\n",
  indent("    ", label("description",
    coalesce(description, description_placeholder))),
  "\n")`,
	},
	{
		"builtin_op_log_compact",
		`label(if(current_operation, "current_operation"),
  separate(" ",
    label("id", format_short_id(id)),
    label("user", user),
    label("time", format_time_range(time))
  ) ++ "\n"
  ++ indent("  ", label("description", description))
  ++ "\n")`,
	},
	{
		"builtin_op_log_comfortable",
		`builtin_op_log_compact ++ "\n"`,
	},
}

// defaultTemplates are the recognized top-level template names and their
// default bodies. User configuration replaces entries wholesale.
var defaultTemplates = map[string]string{
	"log":    `builtin_log_compact`,
	"op_log": `builtin_op_log_compact`,
	"show":   `builtin_log_detailed`,
	"commit_summary": `separate(" ",
  format_short_change_id(change_id),
  format_short_commit_id(commit_id),
  label("description",
    coalesce(description.first_line(), description_placeholder)))`,
}
