// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Matfree is an interpreter for a numeric scripting language compatible with
the core of MATLAB. Every value is a two-dimensional matrix of doubles or
something that behaves like one: logical masks, character strings, cell
arrays, structs and function handles.

Usage:

	matfree [options] [file.m ...]

With file arguments, each file is run in turn in one session and matfree
exits at the first error. A file that holds only function definitions runs
its first function. With -e, the arguments are units of source instead:

	matfree -e 'x = magic(4);' 'disp(sum(x))'

With no arguments, matfree reads from standard input: interactively, with
line editing and history, when it is a terminal, and as a script otherwise.

Flags:

	-config file
		YAML configuration file; default $MATFREE_CONFIG or ~/.matfree.yaml.
	-debug names
		comma-separated debug settings to enable: cpu, panic, parse, trace.
	-demo
		run the demo; a blank line steps through it.
	-e
		execute the arguments as independent units of source.
	-format short|long
		number display format: 4 or 15 decimals.
	-loglevel level
		log level: debug, verbose, info, warning, error.
	-p dir
		add dir to the function search path; may be repeated.
	-prompt text
		interactive prompt; default ">> ".
	-seed n
		seed for rand, randn and randi.

The language

Statements are separated by newlines, semicolons or commas. A statement
ending in a semicolon does not display its result; otherwise the result is
shown as

	x =

	   1   2   3

Expressions have the usual operators. Those with a dot (.*, ./, .^) work
element by element; *, / and \ are matrix multiplication and linear
solution, and ^ is the matrix power. Comparisons yield logical values and
&& and || short-circuit.

	A = [1 2; 3 4];
	b = A \ [5; 6]
	v = 1:2:9;
	v(end)
	v(v > 4) = 0

Indexing is 1-based, with () for matrices, {} for the contents of cells
and . for struct fields. Indexed assignment grows a value as needed, and
assigning [] deletes elements. Values are copied on assignment, never
shared.

Control flow is if/elseif/else, for, while, switch/case/otherwise and
try/catch, each closed by end, with break, continue and return.

Functions are defined in files or at the prompt:

	function [s, p] = sumprod(a, b)
	  s = a + b;
	  p = a * b;
	end

Functions see only their parameters, plus any names declared global or
persistent. They support nargin, nargout, varargin and varargout.
Anonymous functions, @(x) x.^2 + k, capture the variables they mention
when they are created.

Names are resolved as variables, then builtin functions, then user-defined
functions, then files name.m in the directories of the search path, then
the library of functions written in the language itself.

Session commands

Lines beginning with ) are commands to the session rather than statements:

	)about word         list functions whose names resemble word
	)clear              clear all variables and functions
	)debug [flag [n]]   show or set debug flags
	)format [short|long]
	)get file           run the commands and statements in file
	)help [name]        list the commands, or describe name
	)path [dir...]      show or extend the function search path
	)prompt "text"      set the interactive prompt
	)save file          write the variables and settings to file
	)seed [n]           show or set the random seed

Errors

A run-time error stops the current unit and is reported as

	Error: message

Statements that ran before the error keep their effects. Errors carry an
identifier such as MatFree:undefinedName or MatFree:indexOutOfRange that
try/catch can inspect.
*/
package main
