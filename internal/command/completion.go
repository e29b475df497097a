package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/staranto/fglob/internal/meta"
	"github.com/urfave/cli/v3"
)

const bashCompletionScript = `# bash completion for fglob
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_fglob()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "match paths why completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--attrs -a --color -c --filter -f --output -o --sort -s --titles -t --time --tldr"

    case "$cmd" in
        match)
            local opts="$common --schema --chop --stat --template -T"
            ;;
        paths)
            local opts="$common --exclude -x --file-name --type"
            ;;
        why)
            local opts="--detail -d --tldr"
            ;;
        completion)
            local opts="bash zsh"
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
            return 0
            ;;
        --type)
            COMPREPLY=( $(compgen -W "f d" -- "$cur") )
            return 0
            ;;
    esac

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    # Templates and names are paths as far as the shell is concerned.
    COMPREPLY=( $(compgen -f -- "$cur") )
    return 0
}

complete -F _fglob fglob
`

const zshCompletionScript = `#compdef fglob

_fglob() {
  local -a cmds
  cmds=(
    'match:list entries matching a template'
    'paths:resolve paths, globs and templates'
    'why:explain why a template matches nothing'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-a --attrs)'{-a,--attrs}'[columns to include]:attrs'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '(-s --sort)'{-s,--sort}'[sort columns]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--time[log elapsed time]'
  '--tldr[show tldr page]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'fglob commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    match)
      _arguments -C \
        $common \
        '--schema[dump columns]' \
        '--chop[chop common leading directories]' \
        '--stat[include size and modified]' \
        '(-T --template)'{-T,--template}'[include template column]' \
        ':template:_files'
      ;;
    paths)
      _arguments -C \
        $common \
        '*'{-x,--exclude}'[exclude glob]:glob' \
        '--file-name[file to search for]:file' \
        '--type[entry type]:type:(f d)' \
        '*:name:_files'
      ;;
    why)
      _arguments -C \
        '(-d --detail)'{-d,--detail}'[print root, expression and fields]' \
        '--tldr[show tldr page]' \
        ':template:_files'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common '*:name:_files'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _fglob fglob
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	w := cmd.Root().Writer
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		if strings.HasSuffix(sh, "zsh") {
			fmt.Fprint(w, zshCompletionScript)
		} else if strings.HasSuffix(sh, "bash") {
			fmt.Fprint(w, bashCompletionScript)
		} else {
			fmt.Fprintln(cmd.Root().ErrWriter, "usage: fglob completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func CompletionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "fglob completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
