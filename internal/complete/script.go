package complete

import (
	"errors"
	"fmt"
	"io"
)

// Exported variables.
var (
	ErrUnsupportedShell = errors.New("unsupported shell")
)

// Shells lists the shells Script supports.
func Shells() []string {
	return []string{"bash", "fish", "zsh"}
}

// Script writes a shell completion hook for binName. The hook asks the binary's
// complete subcommand for candidates, one per line.
func Script(w io.Writer, shell string, binName string) error {
	var err error

	switch shell {
	case "bash":
		_, err = fmt.Fprintf(w, _bashCompletion, binName, binName, binName, binName)
	case "zsh":
		_, err = fmt.Fprintf(w, _zshCompletion, binName, binName, binName, binName, binName)
	case "fish":
		_, err = fmt.Fprintf(w, _fishCompletion, binName, binName, binName, binName)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedShell, shell)
	}

	return err
}

// unexported variables.
var (
	_bashCompletion = `
_%s_completion() {
    local request="${COMP_LINE:0:$COMP_POINT}"
    local IFS=$'\n'
    COMPREPLY=( $(%s complete "$request") )
}
complete -F _%s_completion %s
`
	_fishCompletion = `
function __%s_complete
    set -l request (commandline -cp)
    %s complete "$request"
end
complete -c %s -a "(__%s_complete)" -f
`
	_zshCompletion = `
#compdef %s

_%s_completion() {
    local request="${BUFFER[1,$CURSOR]}"
    local completions
    completions=("${(@f)$(%s complete "$request")}")

    compadd -a completions
}
compdef _%s_completion %s
`
)
