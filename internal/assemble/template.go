// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assemble

// The document envelope is fixed literal text. The paper size option in the
// class line is the only substitution point; keeping everything else constant
// makes the envelope trivially reproducible.

// classLineFormat is the document-class declaration, parameterized by the
// paper size option ("a4paper", "letterpaper", ...).
const classLineFormat = "\\documentclass[11pt,%s,oneside]{report}\n"

// setupBlock imports the packages the converted chapter bodies rely on:
// graphics, tables, verbatim listings, and font/input encodings.
const setupBlock = `\usepackage{graphicx}
\usepackage{tabularx}
\usepackage{fancyvrb}
\usepackage[T1]{fontenc}
\usepackage[utf8]{inputenc}
`

// tocBlock opens the document and emits the title page and table of contents.
const tocBlock = `
\begin{document}

\maketitle

\tableofcontents

`

// footer closes the document.
const footer = `
\end{document}
`
